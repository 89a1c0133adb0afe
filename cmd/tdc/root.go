// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"io"
	"os"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/config"
)

// app holds the state shared by all subcommands.
type app struct {
	cfg config.Options
	log zerolog.Logger

	configPath string
	method     string
	blockSize  string
	workers    int
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "tdc",
		Short:         "Grammar and dictionary text compression",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a JSON config file (default $"+config.EnvPath+")")
	pf.StringVarP(&a.method, "method", "m", "", "Compression method (lzw or esp)")
	pf.StringVar(&a.blockSize, "block-size", "", "Block size, with an optional binary prefix (e.g. 256Ki)")
	pf.IntVar(&a.workers, "workers", 0, "Number of blocks coded in parallel")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format (auto, console, json)")

	root.AddCommand(
		newCompressCmd(a),
		newDecompressCmd(a),
		newIndexCmd(a),
		newGrammarCmd(a),
		newLZWCmd(a),
		newBenchCmd(a),
	)
	return root
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	raw := make(map[string]interface{})
	flags := cmd.Flags()
	if flags.Changed("method") {
		raw["method"] = a.method
	}
	if flags.Changed("block-size") {
		n, err := strconv.ParsePrefix(a.blockSize, strconv.AutoParse)
		if err != nil {
			return config.Error("invalid block size " + a.blockSize)
		}
		raw["block_size"] = int(n)
	}
	if flags.Changed("workers") {
		raw["workers"] = a.workers
	}
	if flags.Changed("log-level") {
		raw["log_level"] = a.logLevel
	}
	if flags.Changed("log-format") {
		raw["log_format"] = a.logFormat
	}
	if err := cfg.Decode(raw); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log, err = newLogger(cmd.ErrOrStderr(), cfg)
	return err
}

// openInput opens the named file, or standard input for "" and "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

// createOutput creates the named file, or uses standard output for "" and "-".
func createOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	rd, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(rd)
}
