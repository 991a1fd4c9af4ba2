// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// addresses is a comma separated list of I²C addresses, in pin order.
type addresses []uint16

func (a *addresses) String() string {
	s := make([]string, len(*a))
	for i, v := range *a {
		s[i] = i2c.Addr(v).String()
	}
	return strings.Join(s, ",")
}

// Set implements flag.Value. Each address is parsed like i2c.Addr, so both
// "0x20" and "32" are accepted.
func (a *addresses) Set(s string) error {
	var out addresses
	for _, f := range strings.Split(s, ",") {
		var addr i2c.Addr
		if err := addr.Set(strings.TrimSpace(f)); err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}
		out = append(out, uint16(addr))
	}
	*a = out
	return nil
}

// parseLevel accepts 0/1, low/high, off/on.
func parseLevel(s string) (gpio.Level, error) {
	switch strings.ToLower(s) {
	case "1", "high", "on":
		return gpio.High, nil
	case "0", "low", "off":
		return gpio.Low, nil
	}
	return gpio.Low, fmt.Errorf("invalid level %q", s)
}

// parsePinLevel parses "<pin>=<level>".
func parsePinLevel(s string) (int, gpio.Level, error) {
	p, l, ok := strings.Cut(s, "=")
	if !ok {
		return 0, gpio.Low, errors.New("expected <pin>=<level>")
	}
	pin, err := strconv.Atoi(p)
	if err != nil {
		return 0, gpio.Low, fmt.Errorf("invalid pin %q", p)
	}
	level, err := parseLevel(l)
	return pin, level, err
}

// parseByte parses "0xa5", "0b1010", "165".
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}
