package core

import (
	"errors"
	"reflect"
	"testing"
)

func newTestStepper(mode SequencerMode) (*Stepper, *mockRegisters, *recordingDelay) {
	regs := newMockRegisters()
	delay := &recordingDelay{regs: regs}
	return NewStepper(regs, delay, mode), regs, delay
}

func TestStepperInit(t *testing.T) {
	s, regs, delay := newTestStepper(ModeCompatible)
	regs.Write(PORTE, 0x35)
	regs.resetWrites()

	s.Init()

	if regs.Read(DDRE)&CoilMask != CoilMask {
		t.Errorf("Expected coil lines as outputs, DDRE=0x%02X", regs.Read(DDRE))
	}
	writes := regs.writesTo(PORTE)
	if len(writes) != 2 {
		t.Fatalf("Expected 2 PORTE writes, got %d", len(writes))
	}
	if writes[0] != 0x85 {
		t.Errorf("Expected initial excitation 0x85, got 0x%02X", writes[0])
	}
	if got := regs.Read(PORTE); got != 0x05 {
		t.Errorf("Expected coils cleared with low nibble kept (0x05), got 0x%02X", got)
	}
	if !reflect.DeepEqual(delay.waits, []uint16{SettleDelayMs}) {
		t.Errorf("Expected one settle wait of %dms, got %v", SettleDelayMs, delay.waits)
	}
	if !reflect.DeepEqual(delay.writesAt, []int{1}) {
		t.Errorf("Expected settle wait after the first write, got %v", delay.writesAt)
	}
}

func TestStepperSequence(t *testing.T) {
	testCases := []struct {
		name  string
		dir   Direction
		want  []uint8
		phase uint8
	}{
		{
			name:  "clockwise",
			dir:   Clockwise,
			want:  []uint8{0x10, 0x20, 0x40, 0x80, 0x10, 0x20, 0x40, 0x80, 0x10, 0x20},
			phase: 0x40,
		},
		{
			name:  "counter-clockwise",
			dir:   CounterClockwise,
			want:  []uint8{0x10, 0x80, 0x40, 0x20, 0x10, 0x80, 0x40, 0x20, 0x10, 0x80},
			phase: 0x40,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, regs, delay := newTestStepper(ModeCompatible)

			if err := s.MoveBySteps(1, tc.dir); err != nil {
				t.Fatalf("MoveBySteps failed: %v", err)
			}
			if got := regs.writesTo(PORTE); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected writes % X, got % X", tc.want, got)
			}
			if !reflect.DeepEqual(delay.writesAt, []int{5, 10}) {
				t.Errorf("Expected a pause after every 5 writes, got %v", delay.writesAt)
			}
			if s.Phase() != tc.phase {
				t.Errorf("Expected phase 0x%02X, got 0x%02X", tc.phase, s.Phase())
			}
		})
	}
}

func TestStepperCompatibleCounts(t *testing.T) {
	for _, n := range []int{0, 1, 3, 10, StepsPerRevolution} {
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			s, regs, delay := newTestStepper(ModeCompatible)
			s.MoveBySteps(n, dir)

			if got := len(regs.writesTo(PORTE)); got != (n+1)*MicroStepsPerStep {
				t.Errorf("n=%d dir=%d: expected %d writes, got %d", n, dir, (n+1)*MicroStepsPerStep, got)
			}
			if got := delay.total(); got != (n+1)*StepDelayMs {
				t.Errorf("n=%d dir=%d: expected %dms pacing, got %dms", n, dir, (n+1)*StepDelayMs, got)
			}
		}
	}
}

func TestStepperCompatibleNegativeCount(t *testing.T) {
	s, regs, delay := newTestStepper(ModeCompatible)

	if err := s.MoveBySteps(-3, Clockwise); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(regs.writesTo(PORTE)) != 0 || len(delay.waits) != 0 {
		t.Errorf("Expected no motion, got %d writes and %d waits", len(regs.writesTo(PORTE)), len(delay.waits))
	}
}

func TestStepperCompatibleInvalidDirection(t *testing.T) {
	s, regs, delay := newTestStepper(ModeCompatible)

	if err := s.MoveBySteps(3, Direction(0)); err != nil {
		t.Errorf("Expected compatible mode to accept the direction, got %v", err)
	}
	if got := len(regs.writesTo(PORTE)); got != 0 {
		t.Errorf("Expected no coil writes, got %d", got)
	}
	if got := len(delay.waits); got != 4 {
		t.Errorf("Expected 4 paced iterations, got %d", got)
	}
}

func TestStepperStrict(t *testing.T) {
	s, regs, delay := newTestStepper(ModeStrict)

	if err := s.MoveBySteps(4, CounterClockwise); err != nil {
		t.Fatalf("MoveBySteps failed: %v", err)
	}
	if got := len(regs.writesTo(PORTE)); got != 4*MicroStepsPerStep {
		t.Errorf("Expected %d writes, got %d", 4*MicroStepsPerStep, got)
	}
	if got := delay.total(); got != 4*StepDelayMs {
		t.Errorf("Expected %dms pacing, got %dms", 4*StepDelayMs, got)
	}
}

func TestStepperStrictRejects(t *testing.T) {
	testCases := []struct {
		name  string
		steps int
		dir   Direction
		err   error
	}{
		{"zero direction", 1, Direction(0), ErrInvalidDirection},
		{"direction 2", 1, Direction(2), ErrInvalidDirection},
		{"zero steps", 0, Clockwise, ErrInvalidStepCount},
		{"negative steps", -1, CounterClockwise, ErrInvalidStepCount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, regs, delay := newTestStepper(ModeStrict)

			err := s.MoveBySteps(tc.steps, tc.dir)
			if !errors.Is(err, tc.err) {
				t.Errorf("Expected %v, got %v", tc.err, err)
			}
			if len(regs.writes) != 0 || len(delay.waits) != 0 {
				t.Errorf("Expected nothing touched, got %d writes and %d waits", len(regs.writes), len(delay.waits))
			}
		})
	}
}

func TestStepperKeepsLowNibble(t *testing.T) {
	s, regs, _ := newTestStepper(ModeCompatible)
	regs.Write(PORTE, 0xFA)
	regs.resetWrites()

	s.MoveBySteps(2, Clockwise)

	for i, w := range regs.writesTo(PORTE) {
		if w&0x0F != 0x0A {
			t.Errorf("Write %d: expected low nibble 0xA, got 0x%02X", i, w)
		}
		if w&CoilMask == 0 || w&CoilMask&(w&CoilMask-1) != 0 {
			t.Errorf("Write %d: expected exactly one coil, got 0x%02X", i, w)
		}
	}
}

func TestPhaseRotation(t *testing.T) {
	up := []uint8{PE4, PE5, PE6, PE7}
	for i, p := range up {
		next := up[(i+1)%len(up)]
		if got := phaseUp(p); got != next {
			t.Errorf("phaseUp(0x%02X): expected 0x%02X, got 0x%02X", p, next, got)
		}
		if got := phaseDown(next); got != p {
			t.Errorf("phaseDown(0x%02X): expected 0x%02X, got 0x%02X", next, p, got)
		}
	}
}

func TestStepperPacedByTickTimer(t *testing.T) {
	regs := newMockRegisters()
	timer, _ := NewTickTimer(regs, DefaultClockHz)
	regs.startInterrupts(t, timer.HandleCompareMatch)
	s := NewStepper(regs, timer, ModeStrict)

	s.Init()
	if regs.Read(PORTE)&CoilMask != 0 {
		t.Errorf("Expected coils off after init, got 0x%02X", regs.Read(PORTE))
	}

	before := regs.fired.Load()
	if err := s.MoveBySteps(3, Clockwise); err != nil {
		t.Fatalf("MoveBySteps failed: %v", err)
	}
	if fired := regs.fired.Load() - before; fired < 3*StepDelayMs {
		t.Errorf("Expected at least %d ticks of pacing, got %d", 3*StepDelayMs, fired)
	}
}

func TestValidateMove(t *testing.T) {
	if err := ValidateMove(StepsPerRevolution, Clockwise); err != nil {
		t.Errorf("Expected valid move, got %v", err)
	}
	if err := ValidateMove(1, Direction(3)); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}
