// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
	"github.com/GermanBionicSystems/pcf8574io/pcf8574"
	"github.com/maruel/ansi256"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestAddresses(t *testing.T) {
	var a addresses
	if err := a.Set("0x20, 0x21,34"); err != nil {
		t.Fatal(err)
	}
	if want := (addresses{0x20, 0x21, 0x22}); !reflect.DeepEqual(a, want) {
		t.Errorf("got %v, expected %v", a, want)
	}
	if s := a.String(); s != "0x20,0x21,0x22" {
		t.Errorf("String()=%q", s)
	}
	if err := a.Set("0x20,zz"); err == nil {
		t.Error("expected an error")
	}
}

func TestParsePinLevel(t *testing.T) {
	data := []struct {
		in  string
		pin int
		l   gpio.Level
	}{
		{"9=1", 9, gpio.High},
		{"1=off", 1, gpio.Low},
		{"16=High", 16, gpio.High},
	}
	for _, d := range data {
		pin, l, err := parsePinLevel(d.in)
		if err != nil {
			t.Fatal(err)
		}
		if pin != d.pin || l != d.l {
			t.Errorf("%s: got %d=%s", d.in, pin, l)
		}
	}
	for _, bad := range []string{"9", "x=1", "3=2"} {
		if _, _, err := parsePinLevel(bad); err == nil {
			t.Errorf("%s: expected an error", bad)
		}
	}
}

func TestParseByte(t *testing.T) {
	for s, want := range map[string]byte{"0xa5": 0xa5, "0b11": 3, "255": 255} {
		if v, err := parseByte(s); err != nil || v != want {
			t.Errorf("parseByte(%q)=%d,%v", s, v, err)
		}
	}
	if _, err := parseByte("256"); err == nil {
		t.Error("expected an error")
	}
}

func TestRender(t *testing.T) {
	in, err := pcf8574.NewInputs(pcf8574.Layout{PinsPerChip: 4, Addresses: []uint16{0x20, 0x21}})
	if err != nil {
		t.Fatal(err)
	}
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: 0x20, W: []byte{0xff}},
		{Addr: 0x20, R: []byte{0x05}},
		{Addr: 0x21, W: []byte{0xff}},
		{Addr: 0x21, R: []byte{0xf8}},
	}}
	if err := in.Configure(bus, false); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render(&buf, ansi256.Default, in, 4); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], " 1010") || !strings.HasSuffix(lines[1], " 0001") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogPublisher(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := &logPublisher{log: logger}
	if err := p.Publish(watch.Event{Pin: 3, Level: gpio.High}); err != nil {
		t.Fatal(err)
	}
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.InfoLevel || e.Data["pin"] != 3 {
		t.Errorf("unexpected log entry %#v", e)
	}
}

func TestMainImpl_noCommand(t *testing.T) {
	logger, _ := test.NewNullLogger()
	if err := mainImpl(config{}, nil, logrus.NewEntry(logger)); err == nil {
		t.Error("expected an error")
	}
}
