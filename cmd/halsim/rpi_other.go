//go:build !linux

package main

import (
	"errors"

	"mcuhal/hostboard"
)

func attachRPi(hw *hostboard.Board) (func(), error) {
	return nil, errors.New("raspberry pi mirror is only available on linux")
}
