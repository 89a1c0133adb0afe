// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package config holds the options shared by the command line tool and the
// frame container.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/tdcgo/textcomp/frame"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "config: " + string(e) }

// EnvPath names the environment variable consulted by Load when no path is
// given.
const EnvPath = "TDC_CONFIG"

// Compression methods.
const (
	MethodLZW = "lzw"
	MethodESP = "esp"
)

// Log formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures compression.
type Options struct {
	Method    string `mapstructure:"method"`
	BlockSize int    `mapstructure:"block_size"`
	Workers   int    `mapstructure:"workers"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		Method:    MethodLZW,
		BlockSize: 1 << 20,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogFormat: FormatAuto,
	}
}

// Load reads options from a JSON file on top of the defaults.
// If path is empty, the file named by the TDC_CONFIG environment variable
// is used. A missing file is not an error.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := opts.Decode(raw); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// Decode overrides the fields of o named by the keys of raw.
// Unknown keys are rejected.
func (o *Options) Decode(raw map[string]interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           o,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	switch o.Method {
	case MethodLZW, MethodESP:
	default:
		return Error(fmt.Sprintf("unknown method %q", o.Method))
	}
	if o.BlockSize <= 0 || o.BlockSize > frame.MaxBlockSize {
		return Error(fmt.Sprintf("block size %d out of range", o.BlockSize))
	}
	if o.Workers <= 0 {
		return Error(fmt.Sprintf("invalid worker count %d", o.Workers))
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	switch o.LogFormat {
	case FormatAuto, FormatConsole, FormatJSON:
	default:
		return Error(fmt.Sprintf("unknown log format %q", o.LogFormat))
	}
	return nil
}

// Frame returns the container options selected by o.
func (o Options) Frame(log zerolog.Logger) *frame.Options {
	m := frame.LZW
	if o.Method == MethodESP {
		m = frame.ESP
	}
	return &frame.Options{
		Method:    m,
		BlockSize: o.BlockSize,
		Workers:   o.Workers,
		Logger:    &log,
	}
}

// Level parses the log level.
func (o Options) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return zerolog.NoLevel, Error(fmt.Sprintf("invalid log level %q", o.LogLevel))
	}
	return lvl, nil
}
