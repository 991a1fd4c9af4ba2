// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/pcf8574"
	"github.com/sirupsen/logrus/hooks/test"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

type fakePublisher struct {
	events []Event
}

func (f *fakePublisher) Publish(e Event) error {
	f.events = append(f.events, e)
	return nil
}

// flakyBus fails the next transaction to failAddr once.
type flakyBus struct {
	i2c.Bus
	failAddr uint16
	failNext bool
}

func (b *flakyBus) Tx(addr uint16, w, r []byte) error {
	if b.failNext && addr == b.failAddr {
		b.failNext = false
		return errors.New("nack")
	}
	return b.Bus.Tx(addr, w, r)
}

func (b *flakyBus) SetSpeed(f physic.Frequency) error {
	return nil
}

func newInputs(t *testing.T, bus i2c.Bus) *pcf8574.Inputs {
	in, err := pcf8574.NewInputs(pcf8574.Layout{Addresses: []uint16{0x20, 0x21}})
	if err != nil {
		t.Fatal(err)
	}
	if err := in.Configure(bus, false); err != nil {
		t.Fatal(err)
	}
	return in
}

func TestPoll(t *testing.T) {
	playback := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: 0x20, W: []byte{0xff}},
		{Addr: 0x20, R: []byte{0xff}},
		{Addr: 0x21, W: []byte{0xff}},
		{Addr: 0x21, R: []byte{0xff}},
		// Pin 1 goes low.
		{Addr: 0x20, R: []byte{0xfe}},
		{Addr: 0x21, R: []byte{0xff}},
		// Pin 1 goes high, but 0x21 fails.
		{Addr: 0x20, R: []byte{0xff}},
		// Nothing changes on the chips.
		{Addr: 0x20, R: []byte{0xff}},
		{Addr: 0x21, R: []byte{0xff}},
	}}
	bus := &flakyBus{Bus: playback, failAddr: 0x21}
	in := newInputs(t, bus)
	pub := &fakePublisher{}
	logger, _ := test.NewNullLogger()
	w := New(in, pub, logger)
	now := time.Unix(100, 0)
	w.now = func() time.Time { return now }

	n, err := w.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 change, got %d", n)
	}
	if len(pub.events) != 17 {
		t.Fatalf("expected 16 baseline events and 1 change, got %d", len(pub.events))
	}
	if e := pub.events[16]; e.Pin != 1 || e.Level != gpio.Low || !e.Time.Equal(now) {
		t.Errorf("unexpected event %#v", e)
	}

	bus.failNext = true
	if _, err := w.Poll(); err == nil {
		t.Fatal("expected a refresh error")
	}
	if len(pub.events) != 17 {
		t.Errorf("a failed refresh must not publish, got %d events", len(pub.events))
	}

	// Pin 1 already shifted into the last value of 0x20; the change is still
	// reported.
	n, err = w.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || pub.events[17].Pin != 1 || pub.events[17].Level != gpio.High {
		t.Errorf("expected pin 1 High, got %d events: %v", n, pub.events[17:])
	}
	if err := playback.Close(); err != nil {
		t.Error(err)
	}
}

func TestRun(t *testing.T) {
	playback := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: 0x20, W: []byte{0xff}},
		{Addr: 0x20, R: []byte{0xff}},
		{Addr: 0x21, W: []byte{0xff}},
		{Addr: 0x21, R: []byte{0xff}},
		{Addr: 0x20, R: []byte{0xff}},
		{Addr: 0x21, R: []byte{0x7f}},
	}}
	in := newInputs(t, playback)
	pub := &fakePublisher{}
	logger, _ := test.NewNullLogger()
	w := New(in, pub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	edge := make(chan struct{})
	done := make(chan error)
	go func() { done <- w.Run(ctx, nil, edge) }()
	edge <- struct{}{}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	last := pub.events[len(pub.events)-1]
	if last.Pin != 16 || last.Level != gpio.Low {
		t.Errorf("unexpected last event %#v", last)
	}
	if err := playback.Close(); err != nil {
		t.Error(err)
	}
}
