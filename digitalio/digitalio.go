// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package digitalio defines groups of digital pins addressed by a flat,
// 1-based index, independently of the hardware behind them.
//
// Inputs are cached: DigitalRead and LastValue return the levels seen by the
// last two calls to RefreshAll. Outputs are write-through and remember the
// last level set.
//
// pcf8574.Inputs and pcf8574.Outputs implement these interfaces over I²C
// expanders; PinInputs and PinOutputs implement them over any gpio.PinIO,
// like host GPIOs from gpioreg.
package digitalio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// ErrPinRange is returned when a pin is not in 1..Width().
var ErrPinRange = errors.New("digitalio: pin out of range")

// Inputs is a group of digital inputs.
type Inputs interface {
	// Width returns the number of pins. Pins are numbered 1 to Width().
	Width() int
	// DigitalRead returns the level of pin as of the last RefreshAll.
	DigitalRead(pin int) (gpio.Level, error)
	// LastValue returns the level of pin before the last RefreshAll.
	LastValue(pin int) (gpio.Level, error)
	// RefreshAll samples all the pins. It fails if any pin could not be read.
	RefreshAll() error
}

// Outputs is a group of digital outputs.
type Outputs interface {
	// Width returns the number of pins. Pins are numbered 1 to Width().
	Width() int
	// DigitalWrite sets pin to l.
	DigitalWrite(pin int, l gpio.Level) error
	// OutputValue returns the level pin was last set to.
	OutputValue(pin int) (gpio.Level, error)
}

// Change is a pin whose level differs between the last two refreshes.
type Change struct {
	Pin   int
	Level gpio.Level
}

func (c Change) String() string {
	return fmt.Sprintf("%d:%s", c.Pin, c.Level)
}

// Changes returns the pins of in whose current level differs from the
// previous one, in pin order.
func Changes(in Inputs) ([]Change, error) {
	var changes []Change
	for pin := 1; pin <= in.Width(); pin++ {
		cur, err := in.DigitalRead(pin)
		if err != nil {
			return nil, err
		}
		last, err := in.LastValue(pin)
		if err != nil {
			return nil, err
		}
		if cur != last {
			changes = append(changes, Change{Pin: pin, Level: cur})
		}
	}
	return changes, nil
}

func checkPin(pin, width int) error {
	if pin < 1 || pin > width {
		return fmt.Errorf("%w: %d not in 1..%d", ErrPinRange, pin, width)
	}
	return nil
}
