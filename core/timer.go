package core

import (
	"sync/atomic"
	"time"
)

// Clock settings for the board
const (
	DefaultClockHz = 16000000 // 16MHz crystal

	prescalerSlow = 64
	prescalerFast = 1
)

// TickMode selects the Timer2 prescaler used for the tick source
type TickMode uint8

const (
	TickSlow TickMode = 0 // clk/64, one compare match per millisecond
	TickFast TickMode = 1 // clk/1, same compare value
)

// Delayer blocks the caller for a number of milliseconds
type Delayer interface {
	Wait(ms uint16)
}

// TickTimer is the millisecond tick source built on Timer2 in CTC mode.
// The elapsed counter is only incremented by HandleCompareMatch, which the
// platform binds to the TIMER2_COMP interrupt vector, and only read and
// reset by Wait. Wait is not reentrant.
type TickTimer struct {
	regs    RegisterFile
	clockHz uint32
	compare uint8
	ticks   atomic.Uint32
}

// NewTickTimer creates a tick source for a CPU clocked at clockHz.
// A zero clockHz selects DefaultClockHz. If a 1ms tick cannot be expressed
// with the 8-bit compare register the value is clamped to 255 and
// ErrTickUnreachable is returned alongside the usable timer.
func NewTickTimer(regs RegisterFile, clockHz uint32) (*TickTimer, error) {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	cmp, err := CompareValue(clockHz)
	return &TickTimer{
		regs:    regs,
		clockHz: clockHz,
		compare: cmp,
	}, err
}

// CompareValue returns the OCR2 value giving a 1ms compare match with the
// slow prescaler (250 at 16MHz).
func CompareValue(clockHz uint32) (uint8, error) {
	counts := clockHz / prescalerSlow / 1000
	if counts == 0 || counts > 255 {
		return 255, ErrTickUnreachable
	}
	return uint8(counts), nil
}

// Compare returns the compare value programmed into OCR2
func (t *TickTimer) Compare() uint8 {
	return t.compare
}

// TickPeriod returns the real time between two compare matches in the given mode.
// TickFast keeps the slow compare value, so its ticks are 64 times shorter.
func (t *TickTimer) TickPeriod(mode TickMode) time.Duration {
	var prescaler uint64
	switch mode {
	case TickSlow:
		prescaler = prescalerSlow
	case TickFast:
		prescaler = prescalerFast
	default:
		return 0
	}
	cycles := prescaler * uint64(t.compare)
	return time.Duration(cycles * uint64(time.Second) / uint64(t.clockHz))
}

// ConfigureTickSource resets the tick counter and starts Timer2 in CTC mode
// with the compare interrupt enabled, then sets the global interrupt flag.
// An unknown mode leaves the timer alone but the global interrupt flag is
// still set; ErrInvalidTimerMode is returned for callers that check.
func (t *TickTimer) ConfigureTickSource(mode TickMode) error {
	t.ticks.Store(0)

	var err error
	switch mode {
	case TickSlow:
		t.start(TCCR2_WGM21 | TCCR2_CS_DIV64)
	case TickFast:
		t.start(TCCR2_WGM21 | TCCR2_CS_DIV1)
	default:
		err = ErrInvalidTimerMode
	}

	enableInterrupts(t.regs)
	return err
}

func (t *TickTimer) start(control uint8) {
	t.regs.Write(OCR2, t.compare)
	t.regs.Write(TCCR2, control)
	setBits(t.regs, TIMSK, TIMSK_OCIE2)
}

// StopTickSource disables the compare interrupt and clears the Timer2 mode
// and clock select bits. TCNT2 is left as is. Safe to call repeatedly.
func (t *TickTimer) StopTickSource() {
	clearBits(t.regs, TIMSK, TIMSK_OCIE2)
	clearBits(t.regs, TCCR2, TCCR2_MODE_MASK)
}

// HandleCompareMatch is the TIMER2_COMP interrupt handler.
func (t *TickTimer) HandleCompareMatch() {
	t.ticks.Add(1)
}

// Elapsed returns the number of ticks since the tick source was last configured
func (t *TickTimer) Elapsed() uint32 {
	return t.ticks.Load()
}

// Wait blocks the caller for ms milliseconds by spinning on the tick
// counter. Only the interrupt handler runs while Wait spins. There is no
// way to cancel a wait.
func (t *TickTimer) Wait(ms uint16) {
	t.ConfigureTickSource(TickSlow)

	for t.ticks.Load() < uint32(ms) {
		spinRelax()
	}

	t.StopTickSource()
}
