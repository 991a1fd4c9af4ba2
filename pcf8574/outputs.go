// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/pcf8574io/digitalio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Outputs is a group of PCF8574 chips used as outputs, seen as one set of
// pins numbered from 1 to Width().
//
// The chips are never read back; OutputValue and Buffer return what was last
// written, or attempted.
type Outputs struct {
	layout Layout
	chips  []*Dev
}

// NewOutputs returns an unconfigured group of output chips.
func NewOutputs(l Layout) (*Outputs, error) {
	l.Addresses = append([]uint16(nil), l.Addresses...)
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &Outputs{layout: l, chips: l.newChips()}, nil
}

// Configure configures every chip as an output with all pins off. Every chip
// is tried; the returned error joins all the failures.
func (out *Outputs) Configure(bus i2c.Bus, reverse bool) error {
	if bus == nil {
		return ErrNoBus
	}
	opts := Opts{Mode: Output, Reverse: reverse}
	var errs []error
	for i, dev := range out.chips {
		errs = append(errs, dev.Configure(bus, out.layout.Addresses[i], &opts))
	}
	return errors.Join(errs...)
}

// DigitalWrite sets pin to l.
func (out *Outputs) DigitalWrite(pin int, l gpio.Level) error {
	chip, b, err := out.layout.locate(pin)
	if err != nil {
		return err
	}
	return out.chips[chip].SetPin(b, l)
}

// OutputValue returns the level pin was last set to.
func (out *Outputs) OutputValue(pin int) (gpio.Level, error) {
	chip, b, err := out.layout.locate(pin)
	if err != nil {
		return gpio.Low, err
	}
	return out.chips[chip].Value(b), nil
}

// WriteBuffer writes all the pins of one chip at once, bypassing the pin
// mapping. chip is 0-based.
func (out *Outputs) WriteBuffer(chip int, value byte) error {
	if err := out.layout.checkChip(chip); err != nil {
		return err
	}
	return out.chips[chip].SetAll(value)
}

// Buffer returns the byte chip was last set to.
func (out *Outputs) Buffer(chip int) (byte, error) {
	if err := out.layout.checkChip(chip); err != nil {
		return 0, err
	}
	return out.chips[chip].Values(), nil
}

// Width returns the number of pins of the group.
func (out *Outputs) Width() int {
	return out.layout.Width()
}

// Chips returns the chips in pin order.
func (out *Outputs) Chips() []*Dev {
	return out.chips
}

func (out *Outputs) String() string {
	return groupString("PCF8574Outputs", out.layout.Addresses)
}

func groupString(name string, addresses []uint16) string {
	s := name + "[ "
	for _, a := range addresses {
		s += fmt.Sprintf("0x%x ", a)
	}
	return s + "]"
}

var _ digitalio.Outputs = &Outputs{}
