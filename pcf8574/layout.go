// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"fmt"
)

// Layout is the static topology of a group of chips sharing one bus.
//
// Global pins are numbered from 1. Pin p belongs to chip (p-1)/PinsPerChip, at
// local bit (p-1)%PinsPerChip, chips being ordered as in Addresses.
type Layout struct {
	// PinsPerChip is the number of pins used on each chip, 1 to 8. 0 means 8.
	PinsPerChip int
	// ChipCount, when not 0, must match the number of addresses.
	ChipCount int
	// Addresses of the chips, one per chip.
	Addresses []uint16
}

func (l *Layout) validate() error {
	if l.PinsPerChip == 0 {
		l.PinsPerChip = PinCount
	}
	if l.PinsPerChip < 0 || l.PinsPerChip > PinCount {
		return fmt.Errorf("%w: %d pins per chip", ErrLayout, l.PinsPerChip)
	}
	if len(l.Addresses) == 0 {
		return fmt.Errorf("%w: no address", ErrLayout)
	}
	if l.ChipCount != 0 && l.ChipCount != len(l.Addresses) {
		return fmt.Errorf("%w: %d chips but %d addresses", ErrLayout, l.ChipCount, len(l.Addresses))
	}
	seen := make(map[uint16]bool, len(l.Addresses))
	for _, a := range l.Addresses {
		if a > 0x7f {
			return fmt.Errorf("%w: 0x%x", ErrAddress, a)
		}
		if seen[a] {
			return fmt.Errorf("%w: duplicate address 0x%x", ErrLayout, a)
		}
		seen[a] = true
	}
	l.ChipCount = len(l.Addresses)
	return nil
}

// Width returns the total number of pins.
func (l *Layout) Width() int {
	return l.PinsPerChip * l.ChipCount
}

// locate converts a 1-based global pin into a chip index and a local bit.
func (l *Layout) locate(pin int) (chip, bit int, err error) {
	if pin < 1 || pin > l.Width() {
		return 0, 0, fmt.Errorf("%w: %d not in 1..%d", ErrPinRange, pin, l.Width())
	}
	return (pin - 1) / l.PinsPerChip, (pin - 1) % l.PinsPerChip, nil
}

func (l *Layout) checkChip(chip int) error {
	if chip < 0 || chip >= l.ChipCount {
		return fmt.Errorf("%w: %d not in 0..%d", ErrChipRange, chip, l.ChipCount-1)
	}
	return nil
}

// newChips allocates one unconfigured Dev per address.
func (l *Layout) newChips() []*Dev {
	chips := make([]*Dev, len(l.Addresses))
	for i := range chips {
		chips[i] = &Dev{}
	}
	return chips
}
