// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8574 provides a driver for the TI/NXP PCF8574 I2C I/O Expander,
// and fan-out groups that present several of them as one flat, 1-based set of
// digital inputs or outputs.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// # Notes
//
// The chip has no registers. Writing one byte sets the output latch of all 8
// pins; reading one byte returns the level of all 8 pins. A pin used as input
// must have a 1 written to its latch first, which releases it to the weak
// internal pull-up.
//
// The driver keeps the last byte it read (Input mode) or attempted to write
// (Output mode), along with the value before that. Output chips are never read
// back, so their snapshot is optimistic: it reflects the intended latch, even
// when the transaction failed.
//
// When reverse logic is enabled, every byte is inverted on its way to and from
// the bus so callers always see logical values.
package pcf8574

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/digitalio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Mode is the direction a chip is configured for.
type Mode int

const (
	Input Mode = iota
	Output
)

func (m Mode) String() string {
	if m == Output {
		return "Out"
	}
	return "In"
}

const (
	// DefaultAddress is the address with A0..A2 tied low. The PCF8574A
	// variant starts at 0x38.
	DefaultAddress uint16 = 0x20

	// PinCount is the number of pins on one chip.
	PinCount = 8
)

var (
	ErrNoBus          = errors.New("pcf8574: no i2c bus")
	ErrMode           = errors.New("pcf8574: operation not supported in this mode")
	ErrAddress        = errors.New("pcf8574: invalid 7-bit address")
	ErrPinRange       = digitalio.ErrPinRange
	ErrChipRange      = errors.New("pcf8574: chip index out of range")
	ErrLayout         = errors.New("pcf8574: invalid layout")
	ErrNotImplemented = errors.New("pcf8574: not implemented")
)

// timeNow is replaced in tests.
var timeNow = time.Now

// Opts holds the configuration of a single chip.
type Opts struct {
	Mode Mode
	// Reverse inverts all logical values on both read and write.
	Reverse bool
}

// DefaultOpts configures a chip as a non-inverted input.
var DefaultOpts = Opts{Mode: Input}

// Dev is a representation of one PCF8574 device.
//
// The zero value is unconfigured; every bus operation fails with ErrNoBus
// until Configure succeeds.
type Dev struct {
	// The pins exposed by the device. Only set for devices created by New.
	Pins []gpio.PinIO

	mu         sync.Mutex
	d          i2c.Dev
	mode       Mode
	reverse    bool
	value      byte
	lastValue  byte
	lastUpdate time.Time
}

// New creates and configures a PCF8574 io expander at address, and registers
// its pins in gpioreg.
func New(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	dev := &Dev{}
	if err := dev.Configure(bus, address, opts); err != nil {
		return nil, err
	}
	dev.registerPins()
	return dev, nil
}

// Configure binds the device to bus and address, and puts the chip in the
// requested mode.
//
// An input chip has all pins released high, then is read once to seed the
// snapshot. An output chip is driven to all-zero logical values.
func (dev *Dev) Configure(bus i2c.Bus, address uint16, opts *Opts) error {
	if bus == nil {
		return ErrNoBus
	}
	if address > 0x7f {
		return fmt.Errorf("%w: 0x%x", ErrAddress, address)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	dev.mu.Lock()
	dev.d = i2c.Dev{Bus: bus, Addr: address}
	dev.mode = opts.Mode
	dev.reverse = opts.Reverse
	if dev.mode == Output {
		dev.value = 0
		dev.lastValue = 0
		err := dev.write(0)
		dev.mu.Unlock()
		return err
	}
	dev.value = 0xff
	dev.lastValue = 0xff
	// Releasing the pins is not subject to reverse logic.
	err := dev.d.Tx([]byte{0xff}, nil)
	dev.mu.Unlock()
	if err != nil {
		return fmt.Errorf("pcf8574: %s: %w", dev, err)
	}
	return dev.Refresh()
}

// Refresh reads the pins of an input chip.
//
// The refresh time is updated even when the read fails; the snapshot is only
// updated on success.
func (dev *Dev) Refresh() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d.Bus == nil {
		return ErrNoBus
	}
	if dev.mode != Input {
		return ErrMode
	}
	dev.lastUpdate = timeNow()
	var r [1]byte
	if err := dev.d.Tx(nil, r[:]); err != nil {
		return fmt.Errorf("pcf8574: %s: %w", dev, err)
	}
	dev.lastValue = dev.value
	dev.value = dev.wire(r[0])
	return nil
}

// SetAll writes all 8 pins of an output chip at once.
func (dev *Dev) SetAll(values byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d.Bus == nil {
		return ErrNoBus
	}
	if dev.mode != Output {
		return ErrMode
	}
	dev.value = values
	return dev.write(values)
}

// SetPin changes a single pin of an output chip, and writes the whole byte.
//
// The snapshot keeps the new value even if the write fails.
func (dev *Dev) SetPin(pin int, l gpio.Level) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d.Bus == nil {
		return ErrNoBus
	}
	if pin < 0 || pin >= PinCount {
		return fmt.Errorf("%w: %d", ErrPinRange, pin)
	}
	if dev.mode != Output {
		return ErrMode
	}
	if l {
		dev.value |= 1 << pin
	} else {
		dev.value &^= 1 << pin
	}
	return dev.write(dev.value)
}

// Values returns the current snapshot of all 8 pins.
func (dev *Dev) Values() byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// LastValues returns the snapshot that preceded the current one.
func (dev *Dev) LastValues() byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.lastValue
}

// Value returns the cached level of pin. Out of range pins read Low.
func (dev *Dev) Value(pin int) gpio.Level {
	return bit(dev.Values(), pin)
}

// LastValue returns the previous cached level of pin.
func (dev *Dev) LastValue(pin int) gpio.Level {
	return bit(dev.LastValues(), pin)
}

func (dev *Dev) Mode() Mode {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.mode
}

func (dev *Dev) Reverse() bool {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.reverse
}

// LastRefresh returns when Refresh was last attempted. It is the zero time
// for output chips.
func (dev *Dev) LastRefresh() time.Time {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.lastUpdate
}

// Addr returns the configured bus address.
func (dev *Dev) Addr() uint16 {
	return dev.d.Addr
}

// Halt unregisters the pins of the device. The chip itself is left as is.
func (dev *Dev) Halt() error {
	for _, p := range dev.Pins {
		_ = gpioreg.Unregister(p.Name())
	}
	dev.Pins = nil
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("PCF8574_%x", dev.d.Addr)
}

// write performs the low level i2c write. dev.mu must be held.
func (dev *Dev) write(v byte) error {
	if err := dev.d.Tx([]byte{dev.wire(v)}, nil); err != nil {
		return fmt.Errorf("pcf8574: %s: %w", dev, err)
	}
	return nil
}

// wire converts between logical and bus values. The conversion is its own
// inverse.
func (dev *Dev) wire(v byte) byte {
	if dev.reverse {
		return ^v
	}
	return v
}

// registerPins creates the per-bit gpio.PinIO and registers them. Registration
// fails silently when another device already uses the name.
func (dev *Dev) registerPins() {
	dev.Pins = make([]gpio.PinIO, PinCount)
	sDev := dev.String()
	for ix := 0; ix < PinCount; ix++ {
		dev.Pins[ix] = &pcfPin{dev: dev, number: ix, name: fmt.Sprintf("%s_GPIO%d", sDev, ix)}
		_ = gpioreg.Register(dev.Pins[ix])
	}
}

func bit(v byte, pin int) gpio.Level {
	if pin < 0 || pin >= PinCount {
		return gpio.Low
	}
	return v&(1<<pin) != 0
}
