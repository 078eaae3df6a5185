package hostboard

import (
	"time"

	"mcuhal/core"
)

// Timer2 clock select prescalers; 0 means stopped or external clock
var prescalers = [8]uint32{0, 1, 8, 64, 256, 1024, 0, 0}

// interruptEnabledLocked reports whether a compare match would be delivered
func (b *Board) interruptEnabledLocked() bool {
	return b.regs[core.TIMSK]&core.TIMSK_OCIE2 != 0 &&
		b.regs[core.SREG]&core.SREG_I != 0 &&
		prescalers[b.regs[core.TCCR2]&core.TCCR2_CS_MASK] != 0
}

// comparePeriodLocked returns the emulated time between compare matches.
// OCR2 counts are taken to be one period, the same calibration the tick
// source uses.
func (b *Board) comparePeriodLocked() time.Duration {
	prescaler := prescalers[b.regs[core.TCCR2]&core.TCCR2_CS_MASK]
	counts := uint64(b.regs[core.OCR2])
	if counts == 0 {
		counts = 1
	}
	return time.Duration(counts * uint64(prescaler) * uint64(time.Second) / uint64(b.cfg.ClockHz))
}

// updateTimer starts, retunes or stops the ticker after a timer register write
func (b *Board) updateTimer() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.ManualTicks {
		return
	}
	if !b.interruptEnabledLocked() {
		if b.tickStop != nil {
			lg.Debugf("timer2 stopped")
		}
		b.stopTickerLocked()
		return
	}

	period := time.Duration(float64(b.comparePeriodLocked()) * b.cfg.TimeScale)
	if period < minTickPeriod {
		period = minTickPeriod
	}
	if b.tickStop != nil && period == b.tickPeriod {
		return
	}
	b.stopTickerLocked()

	stop := make(chan struct{})
	b.tickStop = stop
	b.tickPeriod = period
	lg.Debugf("timer2 running, compare match every %v", period)
	go b.tickLoop(period, stop)
}

func (b *Board) stopTickerLocked() {
	if b.tickStop != nil {
		close(b.tickStop)
		b.tickStop = nil
		b.tickPeriod = 0
	}
}

func (b *Board) tickLoop(period time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.Interrupt()
		}
	}
}

// Interrupt delivers one compare match to the attached handler, if Timer2
// is clocked with its interrupt and the global interrupt flag enabled.
// It reports whether the handler ran.
func (b *Board) Interrupt() bool {
	b.mu.Lock()
	isr := b.isr
	enabled := b.interruptEnabledLocked()
	b.mu.Unlock()

	if !enabled || isr == nil {
		return false
	}
	b.fired.Add(1)
	isr()
	return true
}
