package core

// ButtonCount is the number of push buttons on the panel (PC0-PC5)
const ButtonCount = 6

// ButtonPanel scans the pulled-up push buttons on PC0-PC5.
// A pressed button shorts its line to ground and reads 0.
type ButtonPanel struct {
	regs RegisterFile
}

// NewButtonPanel creates a button panel on the given register file
func NewButtonPanel(regs RegisterFile) *ButtonPanel {
	return &ButtonPanel{regs: regs}
}

// Init makes PC0-PC5 inputs and enables their pull-up resistors.
// The encoder lines PC6-PC7 are not touched.
func (b *ButtonPanel) Init() {
	clearBits(b.regs, DDRC, ButtonMask)
	setBits(b.regs, PORTC, ButtonMask)
}

// Read returns the position of the pressed button, 1 for PC0 up to 6 for
// PC5, or 0 when nothing is pressed. When several buttons are held the
// highest position wins.
func (b *ButtonPanel) Read() int {
	pins := b.regs.Read(PINC)
	for pos := ButtonCount; pos >= 1; pos-- {
		if pins&(1<<(pos-1)) == 0 {
			return pos
		}
	}
	return 0
}
