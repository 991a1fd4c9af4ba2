// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package digitalio

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// PinInputs is a group of inputs backed by individual gpio pins. Pin 1 is
// pins[0].
type PinInputs struct {
	mu      sync.Mutex
	pins    []gpio.PinIO
	reverse bool
	cur     []gpio.Level
	last    []gpio.Level
}

// NewPinInputs returns a group over pins. Configure must be called before use.
func NewPinInputs(pins ...gpio.PinIO) *PinInputs {
	return &PinInputs{
		pins: pins,
		cur:  make([]gpio.Level, len(pins)),
		last: make([]gpio.Level, len(pins)),
	}
}

// Configure sets every pin as a pulled up input, then samples them once. The
// returned error joins the failures of all the pins.
func (in *PinInputs) Configure(reverse bool) error {
	in.mu.Lock()
	in.reverse = reverse
	var errs []error
	for _, p := range in.pins {
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			errs = append(errs, fmt.Errorf("digitalio: %s: %w", p, err))
		}
	}
	in.mu.Unlock()
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return in.RefreshAll()
}

func (in *PinInputs) DigitalRead(pin int) (gpio.Level, error) {
	if err := checkPin(pin, len(in.pins)); err != nil {
		return gpio.Low, err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cur[pin-1], nil
}

func (in *PinInputs) LastValue(pin int) (gpio.Level, error) {
	if err := checkPin(pin, len(in.pins)); err != nil {
		return gpio.Low, err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last[pin-1], nil
}

// RefreshAll reads every pin. gpio.PinIO.Read can't fail, so neither can this.
func (in *PinInputs) RefreshAll() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	copy(in.last, in.cur)
	for i, p := range in.pins {
		in.cur[i] = p.Read() != gpio.Level(in.reverse)
	}
	return nil
}

func (in *PinInputs) Width() int {
	return len(in.pins)
}

// PinOutputs is a group of outputs backed by individual gpio pins. Pin 1 is
// pins[0].
type PinOutputs struct {
	mu      sync.Mutex
	pins    []gpio.PinIO
	reverse bool
	cur     []gpio.Level
}

// NewPinOutputs returns a group over pins. Configure must be called before
// use.
func NewPinOutputs(pins ...gpio.PinIO) *PinOutputs {
	return &PinOutputs{
		pins: pins,
		cur:  make([]gpio.Level, len(pins)),
	}
}

// Configure drives every pin to the logical Low level.
func (out *PinOutputs) Configure(reverse bool) error {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.reverse = reverse
	var errs []error
	for i, p := range out.pins {
		out.cur[i] = gpio.Low
		if err := p.Out(gpio.Level(reverse)); err != nil {
			errs = append(errs, fmt.Errorf("digitalio: %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// DigitalWrite sets pin to l. The level is remembered even if the pin failed.
func (out *PinOutputs) DigitalWrite(pin int, l gpio.Level) error {
	if err := checkPin(pin, len(out.pins)); err != nil {
		return err
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	out.cur[pin-1] = l
	p := out.pins[pin-1]
	if err := p.Out(l != gpio.Level(out.reverse)); err != nil {
		return fmt.Errorf("digitalio: %s: %w", p, err)
	}
	return nil
}

func (out *PinOutputs) OutputValue(pin int) (gpio.Level, error) {
	if err := checkPin(pin, len(out.pins)); err != nil {
		return gpio.Low, err
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.cur[pin-1], nil
}

func (out *PinOutputs) Width() int {
	return len(out.pins)
}

var _ Inputs = &PinInputs{}
var _ Outputs = &PinOutputs{}
