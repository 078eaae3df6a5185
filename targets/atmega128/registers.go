//go:build tinygo && avr

// Package atmega128 binds the core HAL to the ATmega128's memory-mapped
// registers and its TIMER2_COMP interrupt vector.
package atmega128

import (
	"runtime/volatile"
	"unsafe"

	"mcuhal/core"
)

// Registers is the register file of the running chip
type Registers struct{}

func reg8(r core.Register) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(r)))
}

// Read implements core.RegisterFile
func (Registers) Read(r core.Register) uint8 {
	return reg8(r).Get()
}

// Write implements core.RegisterFile
func (Registers) Write(r core.Register, value uint8) {
	reg8(r).Set(value)
}
