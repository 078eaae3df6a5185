package core

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// regWrite is one recorded register write
type regWrite struct {
	reg   Register
	value uint8
}

// mockRegisters is a test implementation of RegisterFile.
// PINC reads return the pins field; every other register reads back what
// was written. An optional fake interrupt source calls isr while Timer2 is
// clocked, OCIE2 is enabled and the global interrupt flag is set.
type mockRegisters struct {
	mu     sync.Mutex
	values map[Register]uint8
	pins   uint8
	writes []regWrite

	isr   func()
	fired atomic.Uint32
}

func newMockRegisters() *mockRegisters {
	return &mockRegisters{
		values: make(map[Register]uint8),
		pins:   0xFF,
	}
}

func (m *mockRegisters) Read(reg Register) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reg == PINC {
		return m.pins
	}
	return m.values[reg]
}

func (m *mockRegisters) Write(reg Register, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[reg] = value
	m.writes = append(m.writes, regWrite{reg, value})
}

func (m *mockRegisters) setPins(v uint8) {
	m.mu.Lock()
	m.pins = v
	m.mu.Unlock()
}

// writesTo returns the values written to reg, oldest first
func (m *mockRegisters) writesTo(reg Register) []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint8
	for _, w := range m.writes {
		if w.reg == reg {
			out = append(out, w.value)
		}
	}
	return out
}

func (m *mockRegisters) resetWrites() {
	m.mu.Lock()
	m.writes = nil
	m.mu.Unlock()
}

func (m *mockRegisters) interruptEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[TIMSK]&TIMSK_OCIE2 != 0 &&
		m.values[SREG]&SREG_I != 0 &&
		m.values[TCCR2]&TCCR2_CS_MASK != 0
}

// startInterrupts runs the fake compare-match source until the test ends.
// fired is counted before the handler runs, so fired >= handler calls.
func (m *mockRegisters) startInterrupts(t *testing.T, isr func()) {
	m.isr = isr
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			default:
			}
			if m.interruptEnabled() {
				m.fired.Add(1)
				m.isr()
			}
			runtime.Gosched()
		}
	}()
	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}

// recordingDelay is a Delayer that records the requested waits
type recordingDelay struct {
	waits    []uint16
	regs     *mockRegisters
	writesAt []int // PORTE writes seen at each wait
}

func (d *recordingDelay) Wait(ms uint16) {
	d.waits = append(d.waits, ms)
	if d.regs != nil {
		d.writesAt = append(d.writesAt, len(d.regs.writesTo(PORTE)))
	}
}

func (d *recordingDelay) total() int {
	n := 0
	for _, w := range d.waits {
		n += int(w)
	}
	return n
}
