// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package intline

import (
	"errors"
	"time"
)

// Line is not available on non-Linux platforms.
type Line struct{}

// Open returns an error on non-Linux platforms.
func Open(chip string, offset int, debounce time.Duration) (*Line, error) {
	return nil, errors.New("intline: not supported on this platform (requires Linux)")
}

func (l *Line) C() <-chan struct{} {
	return nil
}

func (l *Line) Close() error {
	return nil
}
