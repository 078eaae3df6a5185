//go:build tinygo && avr

package atmega128

import (
	"runtime/interrupt"

	"mcuhal/core"
)

// irqTimer2Comp is the TIMER2_COMP vector number (vector 10 in the
// datasheet's 1-based table, reset excluded)
const irqTimer2Comp = 9

var tickTimer *core.TickTimer

func handleTimer2Comp(interrupt.Interrupt) {
	tickTimer.HandleCompareMatch()
}

// Setup registers the chip's register file, creates the board, binds the
// tick interrupt and runs the component init sequence. The vector is bound
// before Init because the stepper settle time waits on the tick source.
func Setup(cfg core.BoardConfig) (*core.Board, error) {
	core.SetRegisterFile(Registers{})

	board, err := core.NewBoard(core.MustRegisters(), cfg)
	if err != nil {
		return nil, err
	}
	tickTimer = board.Timer

	// AVR vectors are enabled by their peripheral mask bit (TIMSK.OCIE2)
	interrupt.New(irqTimer2Comp, handleTimer2Comp)

	board.Init()
	return board, nil
}
