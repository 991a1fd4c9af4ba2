// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package intline

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Line is a requested host GPIO line connected to INT.
type Line struct {
	line *gpiocdev.Line
	c    chan struct{}
}

// Open requests offset on chip (e.g. "gpiochip0") as a pulled up input,
// reporting falling edges.
func Open(chip string, offset int, debounce time.Duration) (*Line, error) {
	l := &Line{c: make(chan struct{}, 1)}
	opts := []gpiocdev.LineReqOption{
		gpiocdev.WithConsumer("pcf8574"),
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { notify(l.c) }),
	}
	if debounce > 0 {
		opts = append(opts, gpiocdev.WithDebounce(debounce))
	}
	line, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("intline: request %s line %d: %w", chip, offset, err)
	}
	l.line = line
	return l, nil
}

// C receives a value after INT fell.
func (l *Line) C() <-chan struct{} {
	return l.c
}

// Close releases the line.
func (l *Line) Close() error {
	if err := l.line.Close(); err != nil {
		return fmt.Errorf("intline: close: %w", err)
	}
	return nil
}
