//go:build linux

package main

import "mcuhal/hostboard"

// attachRPi mirrors the emulated board onto Raspberry Pi pins
func attachRPi(hw *hostboard.Board) (func(), error) {
	m, err := hostboard.OpenRPiMirror(hostboard.DefaultPinMap)
	if err != nil {
		return nil, err
	}
	m.Attach(hw)
	return func() {
		if err := m.Close(); err != nil {
			lg.Errorf("close gpio: %v", err)
		}
	}, nil
}
