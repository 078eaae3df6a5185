// halsim is an interactive shell over an emulated board
package main

import (
	"flag"
	"fmt"
	"os"

	"mcuhal/config"
	"mcuhal/core"
	"mcuhal/hostboard"

	"github.com/abiosoft/ishell"
	logger "github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("halsim", logger.InfoLevel)

var configPath = flag.String("config", "", "Simulator configuration file (YAML)")

func main() {
	flag.Parse()
	defer logger.FinalizeLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.ChangePackageLogLevel("hostboard", logger.DebugLevel)
		logger.ChangePackageLogLevel("halsim", logger.DebugLevel)
		core.SetDebugEnabled(true)
	}
	core.SetDebugWriter(func(s string) { lg.Debugf("%s", s) })

	hw := hostboard.New(hostboard.Config{
		ClockHz:   cfg.ClockHz,
		TimeScale: cfg.TimeScale,
	})
	defer hw.Close()

	if cfg.RPi {
		closeRPi, err := attachRPi(hw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer closeRPi()
	}

	mode := core.ModeCompatible
	if cfg.Strict {
		mode = core.ModeStrict
	}
	board, err := core.NewBoard(hw, core.BoardConfig{ClockHz: cfg.ClockHz, Mode: mode})
	if err != nil {
		lg.Errorf("clock %dHz: %v, ticks will not be 1ms", cfg.ClockHz, err)
	}
	hw.AttachCompareHandler(board.Timer.HandleCompareMatch)
	board.Init()

	shell := ishell.New()
	shell.Println("mcuhal board simulator")
	shell.Printf("clock %dHz, OCR2=%d, tick %v, stepper %s mode\n",
		cfg.ClockHz, board.Timer.Compare(), board.Timer.TickPeriod(core.TickSlow), modeName(mode))
	addCommands(shell, hw, board)
	shell.Run()
}

func modeName(m core.SequencerMode) string {
	if m == core.ModeStrict {
		return "strict"
	}
	return "compatible"
}
