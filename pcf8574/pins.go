// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type pcfPin struct {
	dev    *Dev
	number int
	name   string
}

func (pin *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

func (pin *pcfPin) Function() string {
	return pin.dev.Mode().String()
}

func (pin *pcfPin) Halt() error {
	return nil
}

// In succeeds only on an input chip. The pull-up is built in and always
// enabled, and edges can't be detected per pin.
func (pin *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if pin.dev.Mode() != Input {
		return ErrMode
	}
	if pull == gpio.PullDown || edge != gpio.NoEdge {
		return ErrNotImplemented
	}
	return nil
}

func (pin *pcfPin) Name() string {
	return pin.name
}

func (pin *pcfPin) Number() int {
	return pin.number
}

func (pin *pcfPin) Out(l gpio.Level) error {
	return pin.dev.SetPin(pin.number, l)
}

func (pin *pcfPin) Pull() gpio.Pull {
	return gpio.PullUp
}

// Read refreshes the whole chip when it is an input, and returns the cached
// level otherwise.
func (pin *pcfPin) Read() gpio.Level {
	if pin.dev.Mode() == Input {
		if err := pin.dev.Refresh(); err != nil {
			log.Println(err)
		}
	}
	return pin.dev.Value(pin.number)
}

func (pin *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *pcfPin) String() string {
	return pin.name
}

// The INT line of the chip signals a change on any input pin, not on a
// specific one.
func (pin *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &pcfPin{}
