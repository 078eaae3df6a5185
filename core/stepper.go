package core

// Open-loop sequencing for the 4-phase stepper on PE4-PE7

// Direction of stepper rotation
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// SequencerMode selects how MoveBySteps treats its arguments
type SequencerMode uint8

const (
	// ModeCompatible runs step count + 1 iterations and accepts any
	// direction; an unknown direction produces paced iterations with no
	// coil writes.
	ModeCompatible SequencerMode = iota

	// ModeStrict runs exactly step count iterations and rejects unknown
	// directions and non-positive step counts before touching the coils.
	ModeStrict
)

const (
	MicroStepsPerStep = 5 // phase advances per step
	StepDelayMs       = 2 // pause after every step
	SettleDelayMs     = 2 // hold time for the initial excitation

	// StepsPerRevolution is the caller's practical upper bound (1.8 degrees per step).
	// It is not enforced.
	StepsPerRevolution = 200

	phaseStart = PE4 // active phase at the start of every move
	phaseInit  = PE7 // excitation held by Init
)

// Stepper drives the coil lines PE4-PE7 of a 4-phase stepper motor.
// Only the coil bits of PORTE are changed, the low nibble is preserved.
type Stepper struct {
	regs  RegisterFile
	delay Delayer
	mode  SequencerMode
	phase uint8 // active phase bit after the last move
}

// NewStepper creates a stepper paced by delay, normally the board's TickTimer
func NewStepper(regs RegisterFile, delay Delayer, mode SequencerMode) *Stepper {
	return &Stepper{
		regs:  regs,
		delay: delay,
		mode:  mode,
		phase: phaseStart,
	}
}

// Mode returns the sequencer mode
func (s *Stepper) Mode() SequencerMode {
	return s.mode
}

// Phase returns the active phase bit left by the last move
func (s *Stepper) Phase() uint8 {
	return s.phase
}

// Init makes PE4-PE7 outputs, holds the initial excitation for the settle
// time and then switches all four coils off.
func (s *Stepper) Init() {
	setBits(s.regs, DDRE, CoilMask)

	state := disableInterrupts()
	s.regs.Write(PORTE, s.regs.Read(PORTE)&^CoilMask|phaseInit)
	restoreInterrupts(state)

	s.delay.Wait(SettleDelayMs)
	clearBits(s.regs, PORTE, CoilMask)
	DebugPrintln("stepper: coils initialised")
}

// ValidateMove checks arguments the way ModeStrict does, for callers that want
// to reject a move up front while running the stepper in ModeCompatible.
func ValidateMove(steps int, dir Direction) error {
	if dir != Clockwise && dir != CounterClockwise {
		return ErrInvalidDirection
	}
	if steps < 1 {
		return ErrInvalidStepCount
	}
	return nil
}

// MoveBySteps turns the motor by steps steps in direction dir. Every step
// advances the phase bit MicroStepsPerStep times, writing the coils after
// each advance, and is followed by a StepDelayMs pause.
// In ModeCompatible the loop runs steps+1 times.
func (s *Stepper) MoveBySteps(steps int, dir Direction) error {
	iterations := steps
	if s.mode == ModeStrict {
		if err := ValidateMove(steps, dir); err != nil {
			return err
		}
	} else if steps >= 0 {
		iterations = steps + 1
	}

	phase := uint8(phaseStart)
	base := s.regs.Read(PORTE) &^ CoilMask

	for i := 0; i < iterations; i++ {
		switch dir {
		case Clockwise:
			for m := 0; m < MicroStepsPerStep; m++ {
				s.regs.Write(PORTE, base|phase)
				phase = phaseUp(phase)
			}
		case CounterClockwise:
			for m := 0; m < MicroStepsPerStep; m++ {
				s.regs.Write(PORTE, base|phase)
				phase = phaseDown(phase)
			}
		}
		s.delay.Wait(StepDelayMs)
	}

	s.phase = phase
	return nil
}

// phaseUp moves the phase bit towards PE7, wrapping back to PE4
func phaseUp(phase uint8) uint8 {
	phase <<= 1
	if phase == 0 {
		phase = PE4
	}
	return phase
}

// phaseDown moves the phase bit towards PE4, wrapping back to PE7
func phaseDown(phase uint8) uint8 {
	phase >>= 1
	if phase&CoilMask == 0 {
		phase = PE7
	}
	return phase
}
