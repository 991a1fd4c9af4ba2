// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package intline watches the open-drain INT output of PCF8574 chips through
// a host GPIO line.
//
// The chips pull INT low when any input pin changes, and release it when they
// are read. Several chips may share one line. Edges are coalesced: C never
// holds more than one pending notification, since a single refresh of all the
// chips clears every pending interrupt.
package intline

// notify queues a notification on c unless one is already pending.
func notify(c chan struct{}) {
	select {
	case c <- struct{}{}:
	default:
	}
}
