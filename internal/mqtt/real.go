// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mqtt

import (
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	prefix string
}

// NewRealPublisher connects to broker.
func NewRealPublisher(broker, clientID, prefix string) (*RealPublisher, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, errors.New("mqtt: connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to broker: %w", err)
	}
	return &RealPublisher{client: client, prefix: prefix}, nil
}

// Publish sends a pin change, retained, with QoS 1.
func (p *RealPublisher) Publish(e watch.Event) error {
	payload, err := FormatPayload(e)
	if err != nil {
		return fmt.Errorf("mqtt: format payload: %w", err)
	}
	token := p.client.Publish(Topic(p.prefix, e.Pin), 1, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return errors.New("mqtt: publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish: %w", err)
	}
	return nil
}

// IsConnected reports whether the client is currently connected.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

var _ watch.Publisher = &RealPublisher{}
