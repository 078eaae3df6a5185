package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"mcuhal/core"
	"mcuhal/hostboard"

	"github.com/abiosoft/ishell"
)

var errUsage = errors.New("wrong number of arguments")

// addCommands registers the board commands with the shell
func addCommands(shell *ishell.Shell, hw *hostboard.Board, board *core.Board) {
	var tracing atomic.Bool
	hw.OnWrite(func(reg core.Register, value uint8) {
		if tracing.Load() {
			lg.Infof("%-5s <- 0x%02X", reg, value)
		}
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "buttons",
		Help: "buttons - show the pressed button position",
		Func: func(c *ishell.Context) {
			c.Printf("button %d\n", board.Buttons.Read())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "press",
		Help: "press <1-6> - hold a button down",
		Func: func(c *ishell.Context) {
			n, err := buttonArg(c.Args)
			if err == nil && !hw.PressButton(n) {
				err = fmt.Errorf("no button %d", n)
			}
			if err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "release",
		Help: "release <1-6> - let a button go",
		Func: func(c *ishell.Context) {
			n, err := buttonArg(c.Args)
			if err == nil && !hw.ReleaseButton(n) {
				err = fmt.Errorf("no button %d", n)
			}
			if err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "encoder",
		Help: "encoder - sample the shaft encoder once",
		Func: func(c *ishell.Context) {
			c.Printf("rotation %d\n", board.Encoder.Read())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "turn",
		Help: "turn <cw|ccw> [clicks] - click the knob through detents",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 || len(c.Args) > 2 {
				c.Err(errUsage)
				return
			}
			dir, err := parseDirection(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			clicks := 1
			if len(c.Args) == 2 {
				if clicks, err = strconv.Atoi(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			c.Printf("encoder total %d\n", turnKnob(hw, board.Encoder, dir, clicks))
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "move",
		Help: "move <steps> <cw|ccw|n> - run the stepper",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(errUsage)
				return
			}
			steps, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			dir, err := parseDirection(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			start := time.Now()
			if err := board.Stepper.MoveBySteps(steps, dir); err != nil {
				c.Err(err)
				return
			}
			c.Printf("moved in %v, phase 0x%02X\n", time.Since(start).Round(time.Millisecond), board.Stepper.Phase())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "wait",
		Help: "wait <ms> - block on the tick source",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			ms, err := strconv.ParseUint(c.Args[0], 10, 16)
			if err != nil {
				c.Err(err)
				return
			}
			start := time.Now()
			board.Timer.Wait(uint16(ms))
			c.Printf("waited %v, %d ticks\n", time.Since(start).Round(time.Microsecond), board.Timer.Elapsed())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "regs",
		Help: "regs - dump the registers",
		Func: func(c *ishell.Context) {
			board.DumpRegisters(func(s string) { c.Println(s) })
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "trace",
		Help: "trace <on|off> - log every register write",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errUsage)
				return
			}
			switch c.Args[0] {
			case "on":
				tracing.Store(true)
			case "off":
				tracing.Store(false)
			default:
				c.Err(fmt.Errorf("trace %s: want on or off", c.Args[0]))
			}
		},
	})
}

func buttonArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	return strconv.Atoi(args[0])
}

// parseDirection accepts cw, ccw or a raw number. Numbers other than
// 1 and -1 are passed through so the sequencer mode decides what happens.
func parseDirection(s string) (core.Direction, error) {
	switch strings.ToLower(s) {
	case "cw":
		return core.Clockwise, nil
	case "ccw":
		return core.CounterClockwise, nil
	}
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("direction %q: want cw, ccw or a number", s)
	}
	return core.Direction(n), nil
}

// turnKnob moves the encoder switches off the detent and back for every
// click, sampling the decoder after each change, and returns the sum of the
// reported rotations.
func turnKnob(hw *hostboard.Board, enc *core.Encoder, dir core.Direction, clicks int) int {
	var adjacent uint8 = core.PC6
	if dir == core.CounterClockwise {
		adjacent = core.PC7
	}
	total := 0
	for i := 0; i < clicks; i++ {
		hw.SetEncoder(adjacent)
		total += enc.Read()
		hw.SetEncoder(core.EncoderMask)
		total += enc.Read()
	}
	return total
}
