// Package hostboard emulates the board's register file on a regular Go host.
// Port C and port E follow the AVR pin model (DDRx/PORTx/PINx with
// pull-ups), and Timer2 in CTC mode raises the compare-match interrupt
// from a goroutine while it is clocked and enabled.
package hostboard

import (
	"sync"
	"sync/atomic"
	"time"

	"mcuhal/core"

	logger "github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("hostboard", logger.InfoLevel)

// minTickPeriod keeps the emulated timer from spinning a ticker too fast to service
const minTickPeriod = 10 * time.Microsecond

// Config holds the emulation settings
type Config struct {
	ClockHz     uint32  // CPU clock, 0 for core.DefaultClockHz
	TimeScale   float64 // real time per emulated time, 0 or 1 for real time
	ManualTicks bool    // no ticker; interrupts only through Interrupt()
}

// WriteFunc observes a register write
type WriteFunc func(reg core.Register, value uint8)

// InputFunc returns extra lines pulled low on a PINx register, e.g. real pins
type InputFunc func(pin core.Register) uint8

// Board is an emulated register file. It is safe for concurrent use.
type Board struct {
	cfg Config

	mu       sync.Mutex
	regs     map[core.Register]uint8
	grounded map[core.Register]uint8 // externally grounded lines per PINx
	isr      func()
	writers  []WriteFunc
	input    InputFunc

	// emulated Timer2 ticker
	tickStop   chan struct{}
	tickPeriod time.Duration

	fired atomic.Uint64
}

// New creates an emulated board with every register cleared
func New(cfg Config) *Board {
	if cfg.ClockHz == 0 {
		cfg.ClockHz = core.DefaultClockHz
	}
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1
	}
	return &Board{
		cfg:      cfg,
		regs:     make(map[core.Register]uint8),
		grounded: make(map[core.Register]uint8),
	}
}

// AttachCompareHandler binds the TIMER2_COMP interrupt vector
func (b *Board) AttachCompareHandler(isr func()) {
	b.mu.Lock()
	b.isr = isr
	b.mu.Unlock()
}

// OnWrite registers an observer called after every register write
func (b *Board) OnWrite(fn WriteFunc) {
	b.mu.Lock()
	b.writers = append(b.writers, fn)
	b.mu.Unlock()
}

// SetInputSource installs a source of externally grounded lines
func (b *Board) SetInputSource(fn InputFunc) {
	b.mu.Lock()
	b.input = fn
	b.mu.Unlock()
}

// Read implements core.RegisterFile
func (b *Board) Read(reg core.Register) uint8 {
	switch reg {
	case core.PINC:
		return b.samplePins(core.PINC, core.DDRC, core.PORTC)
	case core.PINE:
		return b.samplePins(core.PINE, core.DDRE, core.PORTE)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[reg]
}

// samplePins returns output bits as driven and input bits as pulled up
// unless grounded. Inputs without a pull-up read low.
func (b *Board) samplePins(pin, ddr, port core.Register) uint8 {
	b.mu.Lock()
	dir := b.regs[ddr]
	out := b.regs[port]
	ground := b.grounded[pin]
	input := b.input
	b.mu.Unlock()

	if input != nil {
		ground |= input(pin)
	}
	return out&dir | out&^ground&^dir
}

// Write implements core.RegisterFile. Writes to PINx are ignored.
func (b *Board) Write(reg core.Register, value uint8) {
	if reg == core.PINC || reg == core.PINE {
		return
	}

	b.mu.Lock()
	b.regs[reg] = value
	writers := b.writers
	b.mu.Unlock()

	switch reg {
	case core.TCCR2, core.OCR2, core.TIMSK, core.SREG:
		b.updateTimer()
	}
	for _, w := range writers {
		w(reg, value)
	}
}

// Ground pulls lines of a PINx register low, like a closed switch
func (b *Board) Ground(pin core.Register, mask uint8) {
	b.mu.Lock()
	b.grounded[pin] |= mask
	b.mu.Unlock()
}

// Release lets lines of a PINx register float back to their pull-ups
func (b *Board) Release(pin core.Register, mask uint8) {
	b.mu.Lock()
	b.grounded[pin] &^= mask
	b.mu.Unlock()
}

// PressButton holds down button 1-6
func (b *Board) PressButton(n int) bool {
	if n < 1 || n > core.ButtonCount {
		return false
	}
	b.Ground(core.PINC, 1<<(n-1))
	return true
}

// ReleaseButton lets go of button 1-6
func (b *Board) ReleaseButton(n int) bool {
	if n < 1 || n > core.ButtonCount {
		return false
	}
	b.Release(core.PINC, 1<<(n-1))
	return true
}

// SetEncoder sets the encoder switches to sample (PC7/PC6 levels); every
// encoder line that should read low is grounded.
func (b *Board) SetEncoder(sample uint8) {
	b.mu.Lock()
	g := b.grounded[core.PINC] &^ core.EncoderMask
	b.grounded[core.PINC] = g | core.EncoderMask&^sample
	b.mu.Unlock()
}

// Fired returns the number of compare-match interrupts delivered
func (b *Board) Fired() uint64 {
	return b.fired.Load()
}

// Close stops the emulated timer
func (b *Board) Close() {
	b.mu.Lock()
	b.stopTickerLocked()
	b.mu.Unlock()
}
