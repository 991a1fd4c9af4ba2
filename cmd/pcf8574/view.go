// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/pcf8574io/digitalio"
	"github.com/maruel/ansi256"
)

var (
	colorHigh = color.NRGBA{0x00, 0xc0, 0x00, 0xff}
	colorLow  = color.NRGBA{0xc0, 0x00, 0x00, 0xff}
)

// render prints one line per chip: the pin range, one colored block per pin,
// and the levels as 0/1.
func render(w io.Writer, p *ansi256.Palette, in digitalio.Inputs, pinsPerChip int) error {
	var buf bytes.Buffer
	for first := 1; first <= in.Width(); first += pinsPerChip {
		last := min(first+pinsPerChip-1, in.Width())
		fmt.Fprintf(&buf, "%3d-%-3d ", first, last)
		var bits []byte
		for pin := first; pin <= last; pin++ {
			l, err := in.DigitalRead(pin)
			if err != nil {
				return err
			}
			c, b := colorLow, byte('0')
			if l {
				c, b = colorHigh, '1'
			}
			_, _ = io.WriteString(&buf, p.Block(c))
			bits = append(bits, b)
		}
		fmt.Fprintf(&buf, "\033[0m %s\n", bits)
	}
	_, err := buf.WriteTo(w)
	return err
}
