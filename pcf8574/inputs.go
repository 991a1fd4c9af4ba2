// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"

	"github.com/GermanBionicSystems/pcf8574io/digitalio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Inputs is a group of PCF8574 chips used as inputs, seen as one set of pins
// numbered from 1 to Width().
type Inputs struct {
	layout Layout
	chips  []*Dev
}

// NewInputs returns an unconfigured group of input chips. The layout is
// checked here, once.
func NewInputs(l Layout) (*Inputs, error) {
	l.Addresses = append([]uint16(nil), l.Addresses...)
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &Inputs{layout: l, chips: l.newChips()}, nil
}

// Configure configures every chip as an input. Every chip is tried; the
// returned error joins all the failures.
func (in *Inputs) Configure(bus i2c.Bus, reverse bool) error {
	if bus == nil {
		return ErrNoBus
	}
	opts := Opts{Mode: Input, Reverse: reverse}
	var errs []error
	for i, dev := range in.chips {
		errs = append(errs, dev.Configure(bus, in.layout.Addresses[i], &opts))
	}
	return errors.Join(errs...)
}

// DigitalRead returns the cached level of pin, as of the last refresh.
func (in *Inputs) DigitalRead(pin int) (gpio.Level, error) {
	chip, b, err := in.layout.locate(pin)
	if err != nil {
		return gpio.Low, err
	}
	return in.chips[chip].Value(b), nil
}

// LastValue returns the level of pin before the last refresh.
func (in *Inputs) LastValue(pin int) (gpio.Level, error) {
	chip, b, err := in.layout.locate(pin)
	if err != nil {
		return gpio.Low, err
	}
	return in.chips[chip].LastValue(b), nil
}

// RefreshAll reads every chip in order. It fails if any chip failed.
func (in *Inputs) RefreshAll() error {
	var errs []error
	for _, dev := range in.chips {
		errs = append(errs, dev.Refresh())
	}
	return errors.Join(errs...)
}

// Width returns the number of pins of the group.
func (in *Inputs) Width() int {
	return in.layout.Width()
}

// Chips returns the chips in pin order.
func (in *Inputs) Chips() []*Dev {
	return in.chips
}

func (in *Inputs) String() string {
	return groupString("PCF8574Inputs", in.layout.Addresses)
}

var _ digitalio.Inputs = &Inputs{}
