// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
	"periph.io/x/conn/v3/gpio"
)

func TestFormatPayload(t *testing.T) {
	e := watch.Event{
		Time:  time.Date(2025, 6, 3, 22, 18, 12, 0, time.UTC),
		Pin:   13,
		Level: gpio.High,
	}
	payload, err := FormatPayload(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Timestamp != "2025-06-03T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Timestamp)
	}
	if parsed.Pin != 13 {
		t.Errorf("unexpected pin: %d", parsed.Pin)
	}
	if parsed.State != "High" {
		t.Errorf("unexpected state: %s", parsed.State)
	}
}

func TestTopic(t *testing.T) {
	if s := Topic(DefaultPrefix, 9); s != "pcf8574/inputs/9" {
		t.Errorf("Topic()=%q", s)
	}
}

func TestFakePublisher(t *testing.T) {
	f := &FakePublisher{Prefix: "house/buttons"}
	if err := f.Publish(watch.Event{Pin: 2, Level: gpio.Low}); err != nil {
		t.Fatal(err)
	}
	if len(f.Topics) != 1 || f.Topics[0] != "house/buttons/2" {
		t.Errorf("unexpected topics %v", f.Topics)
	}
	f.PublishError = errors.New("offline")
	if err := f.Publish(watch.Event{Pin: 3}); err == nil {
		t.Error("expected PublishError")
	}
	if len(f.Payloads) != 1 {
		t.Errorf("expected 1 payload, got %d", len(f.Payloads))
	}
}
