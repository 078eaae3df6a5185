package core

import "testing"

func TestButtonPanelInit(t *testing.T) {
	regs := newMockRegisters()
	regs.Write(DDRC, 0xFF)
	regs.Write(PORTC, 0x00)

	NewButtonPanel(regs).Init()

	if got := regs.Read(DDRC); got != EncoderMask {
		t.Errorf("Expected DDRC 0x%02X, got 0x%02X", EncoderMask, got)
	}
	if got := regs.Read(PORTC); got != ButtonMask {
		t.Errorf("Expected PORTC 0x%02X, got 0x%02X", ButtonMask, got)
	}
}

func TestButtonPanelRead(t *testing.T) {
	testCases := []struct {
		name    string
		pressed uint8 // lines pulled low
		want    int
	}{
		{"none", 0, 0},
		{"button 1", PC0, 1},
		{"button 2", PC1, 2},
		{"button 3", PC2, 3},
		{"button 4", PC3, 4},
		{"button 5", PC4, 5},
		{"button 6", PC5, 6},
		{"1 and 4", PC0 | PC3, 4},
		{"2 and 6", PC1 | PC5, 6},
		{"all", ButtonMask, 6},
		{"encoder lines only", EncoderMask, 0},
	}

	regs := newMockRegisters()
	panel := NewButtonPanel(regs)
	panel.Init()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			regs.setPins(^tc.pressed)
			if got := panel.Read(); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}
