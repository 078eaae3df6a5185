package core

// RegisterFile is the abstract register interface that core code uses.
// Platform-specific implementations map it onto real memory-mapped I/O
// or onto an emulated board.
type RegisterFile interface {
	// Read returns the current value of a register.
	// Reading a PINx register samples the input lines.
	Read(reg Register) uint8

	// Write stores a value into a register.
	Write(reg Register, value uint8)
}

// Global singleton used by target code.
var registerFile RegisterFile

// SetRegisterFile is called by target-specific code to register its register file.
func SetRegisterFile(r RegisterFile) {
	registerFile = r
}

// MustRegisters returns the configured register file or panics if missing.
func MustRegisters() RegisterFile {
	if registerFile == nil {
		panic("register file not configured")
	}
	return registerFile
}

// setBits ORs mask into reg. The read-modify-write runs with interrupts
// disabled so an interrupt handler cannot interleave with it.
func setBits(r RegisterFile, reg Register, mask uint8) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	r.Write(reg, r.Read(reg)|mask)
}

// clearBits clears mask in reg, with interrupts disabled.
func clearBits(r RegisterFile, reg Register, mask uint8) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	r.Write(reg, r.Read(reg)&^mask)
}

// enableInterrupts sets the global interrupt flag (sei). It must not go
// through setBits: restoring the saved state would clear the flag again.
func enableInterrupts(r RegisterFile) {
	r.Write(SREG, r.Read(SREG)|SREG_I)
}
