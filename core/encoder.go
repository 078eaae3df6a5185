package core

// Rotation reported by the shaft encoder
const (
	RotationNone = 0
	RotationCW   = 1
	RotationCCW  = -1
)

// Encoder samples (PC7, PC6)
const (
	encoderDetent = PC7 | PC6 // both switches open, knob resting in a groove
	encoderCW     = PC6       // PC6 high, PC7 low
	encoderCCW    = PC7       // PC7 high, PC6 low
)

// Encoder decodes the two-switch shaft encoder on PC6-PC7.
// Rotation is only reported for a transition that leaves the detent.
// Read must be polled often; there is no debouncing beyond the detent rule.
type Encoder struct {
	regs     RegisterFile
	previous uint8
}

// NewEncoder creates an encoder whose previous sample is the detent
func NewEncoder(regs RegisterFile) *Encoder {
	return &Encoder{
		regs:     regs,
		previous: encoderDetent,
	}
}

// Init makes PC6-PC7 inputs and enables their pull-up resistors.
// The button lines PC0-PC5 are not touched.
func (e *Encoder) Init() {
	clearBits(e.regs, DDRC, EncoderMask)
	setBits(e.regs, PORTC, EncoderMask)
}

// Read samples the encoder lines and returns RotationCW, RotationCCW or
// RotationNone. The sample always becomes the new previous sample.
func (e *Encoder) Read() int {
	sample := e.regs.Read(PINC) & EncoderMask

	rotation := RotationNone
	if e.previous == encoderDetent {
		switch sample {
		case encoderCW:
			rotation = RotationCW
		case encoderCCW:
			rotation = RotationCCW
		}
	}

	e.previous = sample
	return rotation
}

// Previous returns the last sample taken, masked to PC6-PC7
func (e *Encoder) Previous() uint8 {
	return e.previous
}
