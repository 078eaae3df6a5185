//go:build linux

package hostboard

import (
	"fmt"

	"mcuhal/core"

	rpio "github.com/stianeikeland/go-rpio/v4"
)

// PinMap lists the Raspberry Pi BCM pins standing in for the board's lines
type PinMap struct {
	Coils   [4]int                // PE4-PE7
	Buttons [core.ButtonCount]int // PC0-PC5
	Encoder [2]int                // PC6, PC7
}

// DefaultPinMap is the wiring used by the bench harness
var DefaultPinMap = PinMap{
	Coils:   [4]int{26, 13, 6, 5},
	Buttons: [core.ButtonCount]int{17, 27, 22, 23, 24, 25},
	Encoder: [2]int{16, 20},
}

// RPiMirror drives real coil pins from emulated PORTE writes and feeds
// real switch pins into emulated PINC reads.
type RPiMirror struct {
	coils  [4]rpio.Pin
	inputs [8]rpio.Pin // indexed by PORTC bit
}

// OpenRPiMirror opens /dev/gpiomem and configures the pins of m
func OpenRPiMirror(m PinMap) (*RPiMirror, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	r := new(RPiMirror)
	for i, n := range m.Coils {
		r.coils[i] = rpio.Pin(n)
		r.coils[i].Output()
		r.coils[i].Low()
	}
	for i, n := range m.Buttons {
		r.inputs[i] = rpio.Pin(n)
	}
	r.inputs[6] = rpio.Pin(m.Encoder[0])
	r.inputs[7] = rpio.Pin(m.Encoder[1])
	for _, p := range r.inputs {
		p.Input()
		p.PullUp()
	}
	lg.Infof("mirroring coils on %v, switches on %v %v", m.Coils, m.Buttons, m.Encoder)
	return r, nil
}

// Attach hooks the mirror into an emulated board
func (r *RPiMirror) Attach(b *Board) {
	b.OnWrite(r.handleWrite)
	b.SetInputSource(r.grounded)
}

func (r *RPiMirror) handleWrite(reg core.Register, value uint8) {
	if reg != core.PORTE {
		return
	}
	for i, p := range r.coils {
		if value&(core.PE4<<i) != 0 {
			p.High()
		} else {
			p.Low()
		}
	}
}

func (r *RPiMirror) grounded(pin core.Register) uint8 {
	if pin != core.PINC {
		return 0
	}
	var mask uint8
	for i, p := range r.inputs {
		if p.Read() == rpio.Low {
			mask |= 1 << i
		}
	}
	return mask
}

// Close switches the coils off and releases /dev/gpiomem
func (r *RPiMirror) Close() error {
	for _, p := range r.coils {
		p.Low()
	}
	return rpio.Close()
}
