package core

// BoardConfig holds the few settings the board components need
type BoardConfig struct {
	ClockHz uint32        // CPU clock, 0 for DefaultClockHz
	Mode    SequencerMode // stepper sequencer mode
}

// Board wires the components of the board to one register file
type Board struct {
	Regs    RegisterFile
	Timer   *TickTimer
	Buttons *ButtonPanel
	Encoder *Encoder
	Stepper *Stepper
}

// NewBoard creates all components on regs. An ErrTickUnreachable from the
// timer is passed back with a usable board.
func NewBoard(regs RegisterFile, cfg BoardConfig) (*Board, error) {
	timer, err := NewTickTimer(regs, cfg.ClockHz)
	b := &Board{
		Regs:    regs,
		Timer:   timer,
		Buttons: NewButtonPanel(regs),
		Encoder: NewEncoder(regs),
		Stepper: NewStepper(regs, timer, cfg.Mode),
	}
	return b, err
}

// Init configures the buttons, the encoder and the stepper, in that order.
// The timer interrupt handler must already be bound, since the stepper
// settle time is paced by the tick source.
func (b *Board) Init() {
	b.Buttons.Init()
	b.Encoder.Init()
	b.Stepper.Init()
	DebugPrintln("board: clock " + utoa(b.Timer.clockHz) + "Hz, OCR2=" + utoa(uint32(b.Timer.compare)))
}

// DumpRegisters writes one "NAME=0xVV" line per known register to w.
// PINx registers are sampled by the read.
func (b *Board) DumpRegisters(w DebugWriter) {
	for _, reg := range Registers {
		w(reg.String() + "=0x" + hex8(b.Regs.Read(reg)))
	}
}
