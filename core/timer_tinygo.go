//go:build tinygo

package core

// spinRelax does nothing on the target: the compare interrupt preempts the
// spin loop directly.
func spinRelax() {}
