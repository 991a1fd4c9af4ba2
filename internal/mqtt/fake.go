// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mqtt

import (
	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
)

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	Prefix string

	// Topics and Payloads are in publication order.
	Topics   []string
	Payloads [][]byte

	// PublishError, if set, is returned by Publish.
	PublishError error

	Closed bool
}

func (f *FakePublisher) Publish(e watch.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(e)
	if err != nil {
		return err
	}
	prefix := f.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	f.Topics = append(f.Topics, Topic(prefix, e.Pin))
	f.Payloads = append(f.Payloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

var _ watch.Publisher = &FakePublisher{}
