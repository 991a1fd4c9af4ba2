// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pcf8574 reads and writes groups of PCF8574 I/O expanders.
//
// Usage:
//
//	pcf8574 [flags] read
//	pcf8574 [flags] write <pin>=<level> ...
//	pcf8574 [flags] set <chip> <byte>
//	pcf8574 [flags] watch
//
// Pins are numbered from 1, in the order of -addr. write and set configure
// the chips as outputs first, so every pin not named ends up off.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/pcf8574io/internal/intline"
	"github.com/GermanBionicSystems/pcf8574io/internal/mqtt"
	"github.com/GermanBionicSystems/pcf8574io/internal/watch"
	"github.com/GermanBionicSystems/pcf8574io/pcf8574"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type config struct {
	bus         string
	addrs       addresses
	pinsPerChip int
	reverse     bool

	poll     time.Duration
	intChip  string
	intLine  int
	debounce time.Duration
	broker   string
	clientID string
	topic    string
}

func main() {
	cfg := config{addrs: addresses{pcf8574.DefaultAddress}}
	flag.StringVar(&cfg.bus, "bus", "", "I²C bus to use")
	flag.Var(&cfg.addrs, "addr", "comma separated chip addresses, in pin order")
	flag.IntVar(&cfg.pinsPerChip, "pins", pcf8574.PinCount, "pins used per chip")
	flag.BoolVar(&cfg.reverse, "reverse", false, "invert all levels")
	flag.DurationVar(&cfg.poll, "poll", 100*time.Millisecond, "watch: polling interval (0 to disable)")
	flag.StringVar(&cfg.intChip, "int-chip", "gpiochip0", "watch: GPIO chip of the INT line")
	flag.IntVar(&cfg.intLine, "int-line", -1, "watch: GPIO line connected to INT (-1 to disable)")
	flag.DurationVar(&cfg.debounce, "debounce", 0, "watch: INT line debounce period")
	flag.StringVar(&cfg.broker, "broker", "", "watch: MQTT broker address, e.g. tcp://localhost:1883")
	flag.StringVar(&cfg.clientID, "client-id", "pcf8574", "watch: MQTT client ID")
	flag.StringVar(&cfg.topic, "topic", mqtt.DefaultPrefix, "watch: MQTT topic prefix")
	loglevel := flag.Int("loglevel", int(logrus.InfoLevel), "log level, 0 to 6")
	flag.Parse()

	log := newLogger(*loglevel)
	if err := mainImpl(cfg, flag.Args(), log); err != nil {
		log.WithError(err).Fatal("pcf8574")
	}
}

func mainImpl(cfg config, args []string, log *logrus.Entry) error {
	if len(args) == 0 {
		return errors.New("specify a command: read, write, set or watch")
	}
	layout := pcf8574.Layout{PinsPerChip: cfg.pinsPerChip, Addresses: cfg.addrs}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.bus)
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer bus.Close()
	log.WithField("bus", bus.String()).Debug("opened")

	switch args[0] {
	case "read":
		return runRead(bus, layout, cfg.reverse)
	case "write":
		return runWrite(bus, layout, cfg.reverse, args[1:])
	case "set":
		return runSet(bus, layout, cfg.reverse, args[1:])
	case "watch":
		return runWatch(bus, layout, cfg, log)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func runRead(bus i2c.Bus, layout pcf8574.Layout, reverse bool) error {
	in, err := pcf8574.NewInputs(layout)
	if err != nil {
		return err
	}
	if err := in.Configure(bus, reverse); err != nil {
		return err
	}
	return render(colorable.NewColorableStdout(), ansi256.Default, in, in.Width()/len(in.Chips()))
}

func runWrite(bus i2c.Bus, layout pcf8574.Layout, reverse bool, args []string) error {
	if len(args) == 0 {
		return errors.New("write: expected <pin>=<level> ...")
	}
	out, err := pcf8574.NewOutputs(layout)
	if err != nil {
		return err
	}
	if err := out.Configure(bus, reverse); err != nil {
		return err
	}
	for _, a := range args {
		pin, l, err := parsePinLevel(a)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if err := out.DigitalWrite(pin, l); err != nil {
			return err
		}
	}
	return nil
}

func runSet(bus i2c.Bus, layout pcf8574.Layout, reverse bool, args []string) error {
	if len(args) != 2 {
		return errors.New("set: expected <chip> <byte>")
	}
	chip, err := parseByte(args[0])
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	v, err := parseByte(args[1])
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	out, err := pcf8574.NewOutputs(layout)
	if err != nil {
		return err
	}
	if err := out.Configure(bus, reverse); err != nil {
		return err
	}
	return out.WriteBuffer(int(chip), v)
}

func runWatch(bus i2c.Bus, layout pcf8574.Layout, cfg config, log *logrus.Entry) error {
	in, err := pcf8574.NewInputs(layout)
	if err != nil {
		return err
	}
	if err := in.Configure(bus, cfg.reverse); err != nil {
		return err
	}

	var pub watch.Publisher = &logPublisher{log: log}
	if cfg.broker != "" {
		p, err := mqtt.NewRealPublisher(cfg.broker, cfg.clientID, cfg.topic)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	}

	var tick <-chan time.Time
	if cfg.poll > 0 {
		ticker := time.NewTicker(cfg.poll)
		defer ticker.Stop()
		tick = ticker.C
	}
	var edge <-chan struct{}
	if cfg.intLine >= 0 {
		line, err := intline.Open(cfg.intChip, cfg.intLine, cfg.debounce)
		if err != nil {
			return err
		}
		defer line.Close()
		edge = line.C()
	}
	if tick == nil && edge == nil {
		return errors.New("watch: enable -poll or -int-line")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.WithFields(logrus.Fields{"inputs": in.String(), "poll": cfg.poll, "int-line": cfg.intLine}).Info("watching")
	return watch.New(in, pub, log).Run(ctx, tick, edge)
}
