//go:build !tinygo

package core

import "runtime"

// spinRelax lets the goroutine that stands in for the interrupt run
// while Wait spins (regular Go implementation)
func spinRelax() {
	runtime.Gosched()
}
