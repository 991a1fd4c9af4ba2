// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mqtt publishes input pin changes to an MQTT broker.
//
// Each pin has its own retained topic, <prefix>/<pin>, so a new subscriber
// immediately gets the last known level of every pin.
package mqtt

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
)

// DefaultPrefix is the topic prefix used when none is given.
const DefaultPrefix = "pcf8574/inputs"

// Payload is the JSON published for one pin change.
type Payload struct {
	Timestamp string `json:"timestamp"`
	Pin       int    `json:"pin"`
	State     string `json:"state"`
}

// Topic returns the topic of pin.
func Topic(prefix string, pin int) string {
	return prefix + "/" + strconv.Itoa(pin)
}

// FormatPayload converts an event to its JSON payload.
func FormatPayload(e watch.Event) ([]byte, error) {
	return json.Marshal(Payload{
		Timestamp: e.Time.UTC().Format(time.RFC3339),
		Pin:       e.Pin,
		State:     e.Level.String(),
	})
}
