// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package watch refreshes a group of inputs on demand and reports the pins
// that changed.
package watch

import (
	"context"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/digitalio"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Event is a pin that changed level.
type Event struct {
	Time  time.Time
	Pin   int
	Level gpio.Level
}

// Publisher receives the events.
type Publisher interface {
	Publish(e Event) error
}

// Watcher turns refreshes of Inputs into events.
type Watcher struct {
	in  digitalio.Inputs
	pub Publisher
	log logrus.FieldLogger
	now func() time.Time

	published []gpio.Level
	resync    bool
}

// New returns a Watcher. in must already be configured.
func New(in digitalio.Inputs, pub Publisher, log logrus.FieldLogger) *Watcher {
	return &Watcher{in: in, pub: pub, log: log, now: time.Now}
}

// Baseline publishes the current level of every pin, without refreshing.
func (w *Watcher) Baseline() error {
	w.published = make([]gpio.Level, w.in.Width())
	t := w.now()
	for pin := 1; pin <= w.in.Width(); pin++ {
		l, err := w.in.DigitalRead(pin)
		if err != nil {
			return err
		}
		w.published[pin-1] = l
		w.publish(Event{Time: t, Pin: pin, Level: l})
	}
	return nil
}

// Poll refreshes the inputs once and publishes the changes. It returns the
// number of events.
//
// A failed refresh publishes nothing. Chips that did refresh have already
// dropped their previous value by then, so the next successful refresh is
// compared against what was published instead.
func (w *Watcher) Poll() (int, error) {
	if w.published == nil {
		if err := w.Baseline(); err != nil {
			return 0, err
		}
	}
	if err := w.in.RefreshAll(); err != nil {
		w.resync = true
		return 0, err
	}
	var changes []digitalio.Change
	var err error
	if w.resync {
		changes, err = w.diff()
	} else {
		changes, err = digitalio.Changes(w.in)
	}
	if err != nil {
		return 0, err
	}
	w.resync = false
	t := w.now()
	for _, c := range changes {
		w.published[c.Pin-1] = c.Level
		w.publish(Event{Time: t, Pin: c.Pin, Level: c.Level})
	}
	return len(changes), nil
}

// Run polls on every tick and every edge until ctx is done. Either channel
// may be nil. Refresh errors are logged, never fatal.
func (w *Watcher) Run(ctx context.Context, tick <-chan time.Time, edge <-chan struct{}) error {
	if err := w.Baseline(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		case <-edge:
		}
		n, err := w.Poll()
		if err != nil {
			w.log.WithError(err).Warn("refresh failed")
			continue
		}
		if n != 0 {
			w.log.WithField("changes", n).Debug("inputs changed")
		}
	}
}

func (w *Watcher) diff() ([]digitalio.Change, error) {
	var changes []digitalio.Change
	for pin := 1; pin <= w.in.Width(); pin++ {
		l, err := w.in.DigitalRead(pin)
		if err != nil {
			return nil, err
		}
		if l != w.published[pin-1] {
			changes = append(changes, digitalio.Change{Pin: pin, Level: l})
		}
	}
	return changes, nil
}

func (w *Watcher) publish(e Event) {
	if err := w.pub.Publish(e); err != nil {
		w.log.WithError(err).WithField("pin", e.Pin).Warn("publish failed")
	}
}
