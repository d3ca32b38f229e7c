// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"os"
)

// Config is a configuration for the loggers.
type Config struct {
	File   *os.File
	Level  Level
	Format Format
}

func DefaultConfig() *Config {
	return &Config{
		File:   nil,
		Level:  InfoLevel,
		Format: TextFormat,
	}
}

type Level int

// Levels start from 1 to avoid zero value in help printer.
const (
	ErrorLevel Level = 1 + iota
	WarnLevel
	InfoLevel
	DebugLevel
)

var levelNames = [...]string{"error", "warn", "info", "debug"}

func (l Level) String() string {
	if l < ErrorLevel || l > DebugLevel {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l-1]
}

func ParseLevel(val string) (Level, error) {
	for i, name := range levelNames {
		if val == name {
			return Level(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", val)
}

type Format int

// Formats start from 1 to avoid zero value in help printer.
const (
	TextFormat Format = 1 + iota
	JSONFormat
)

var formatNames = [...]string{"text", "json"}

func (f Format) String() string {
	if f < TextFormat || f > JSONFormat {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f-1]
}

func ParseFormat(val string) (Format, error) {
	for i, name := range formatNames {
		if val == name {
			return Format(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown log format %q", val)
}
