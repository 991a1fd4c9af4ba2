// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
	"github.com/sirupsen/logrus"
)

func newLogger(level int) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.Level(level))
	f := new(prefixed.TextFormatter)
	f.TimestampFormat = "2006-01-02 15:04:05"
	f.FullTimestamp = true
	f.PrefixPadding = 20
	f.SpacePadding = 50
	logger.SetFormatter(f)
	return logrus.NewEntry(logger).WithField("prefix", "pcf8574")
}

// logPublisher reports events in the log when no broker is configured.
type logPublisher struct {
	log logrus.FieldLogger
}

func (p *logPublisher) Publish(e watch.Event) error {
	p.log.WithFields(logrus.Fields{"pin": e.Pin, "level": e.Level}).Info("input")
	return nil
}
