// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8574io is a container for the PCF8574 I/O expander driver and
// its tools.
//
// The driver lives in package pcf8574. Package digitalio holds the
// polymorphic input and output contracts, and cmd/pcf8574 is the command
// line tool.
package pcf8574io
