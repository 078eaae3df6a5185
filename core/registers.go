package core

// Register identifies one of the memory-mapped I/O registers the HAL touches.
// The numeric value is the ATmega128 data-space address of the register.
type Register uint16

// Data-space addresses (I/O address + 0x20)
const (
	PINE  Register = 0x21
	DDRE  Register = 0x22
	PORTE Register = 0x23
	PINC  Register = 0x33
	DDRC  Register = 0x34
	PORTC Register = 0x35
	OCR2  Register = 0x43
	TCNT2 Register = 0x44
	TCCR2 Register = 0x45
	TIMSK Register = 0x57
	SREG  Register = 0x5F
)

// Registers lists every register known to the HAL, in address order.
var Registers = []Register{PINE, DDRE, PORTE, PINC, DDRC, PORTC, OCR2, TCNT2, TCCR2, TIMSK, SREG}

// String returns the datasheet name of the register
func (r Register) String() string {
	switch r {
	case PINE:
		return "PINE"
	case DDRE:
		return "DDRE"
	case PORTE:
		return "PORTE"
	case PINC:
		return "PINC"
	case DDRC:
		return "DDRC"
	case PORTC:
		return "PORTC"
	case OCR2:
		return "OCR2"
	case TCNT2:
		return "TCNT2"
	case TCCR2:
		return "TCCR2"
	case TIMSK:
		return "TIMSK"
	case SREG:
		return "SREG"
	default:
		return "REG(0x" + hex8(uint8(r)) + ")"
	}
}

// TCCR2 - Timer/Counter2 control register
const (
	TCCR2_CS20  = 1 << 0 // Clock select bit 0
	TCCR2_CS21  = 1 << 1 // Clock select bit 1
	TCCR2_CS22  = 1 << 2 // Clock select bit 2
	TCCR2_WGM21 = 1 << 3 // Waveform generation (CTC when set alone)
	TCCR2_COM20 = 1 << 4 // Compare output mode bit 0
	TCCR2_COM21 = 1 << 5 // Compare output mode bit 1
	TCCR2_WGM20 = 1 << 6 // Waveform generation (PWM)
	TCCR2_FOC2  = 1 << 7 // Force output compare

	// Clock select field
	TCCR2_CS_MASK  = TCCR2_CS22 | TCCR2_CS21 | TCCR2_CS20
	TCCR2_CS_DIV1  = TCCR2_CS20
	TCCR2_CS_DIV64 = TCCR2_CS21 | TCCR2_CS20

	// Everything that selects a mode or a clock; COM bits stay untouched.
	TCCR2_MODE_MASK = TCCR2_FOC2 | TCCR2_WGM20 | TCCR2_WGM21 | TCCR2_CS_MASK
)

// TIMSK - Timer interrupt mask register
const (
	TIMSK_OCIE2 = 1 << 7 // Timer2 output compare match interrupt enable
)

// SREG - Status register
const (
	SREG_I = 1 << 7 // Global interrupt enable
)

// Port C: push-button panel on PC0-PC5, shaft encoder on PC6-PC7
const (
	PC0 = 1 << 0
	PC1 = 1 << 1
	PC2 = 1 << 2
	PC3 = 1 << 3
	PC4 = 1 << 4
	PC5 = 1 << 5
	PC6 = 1 << 6
	PC7 = 1 << 7

	ButtonMask  = PC0 | PC1 | PC2 | PC3 | PC4 | PC5
	EncoderMask = PC6 | PC7
)

// Port E: stepper coil lines on PE4-PE7
const (
	PE4 = 1 << 4
	PE5 = 1 << 5
	PE6 = 1 << 6
	PE7 = 1 << 7

	CoilMask = PE4 | PE5 | PE6 | PE7
)

// PinRegister returns the input register paired with a port data register.
func PinRegister(port Register) (Register, bool) {
	switch port {
	case PORTC:
		return PINC, true
	case PORTE:
		return PINE, true
	}
	return 0, false
}

// DirectionRegister returns the data direction register paired with a port data register.
func DirectionRegister(port Register) (Register, bool) {
	switch port {
	case PORTC:
		return DDRC, true
	case PORTE:
		return DDRE, true
	}
	return 0, false
}
