// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/frame"
)

func newCompressCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "Compress a file or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			rd, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer rd.Close()
			wr, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer wr.Close()

			ts := time.Now()
			zw, err := frame.NewWriter(wr, a.cfg.Frame(a.log))
			if err != nil {
				return err
			}
			if _, err := io.Copy(zw, rd); err != nil {
				return err
			}
			if err := zw.Close(); err != nil {
				return err
			}
			a.log.Info().
				Str("method", a.cfg.Method).
				Int64("raw", zw.InputOffset()).
				Int64("packed", zw.OutputOffset()).
				Dur("elapsed", time.Since(ts)).
				Msg("compressed")
			return wr.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default standard output)")
	return cmd
}

func newDecompressCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "decompress [file]",
		Short: "Decompress a file or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			rd, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer rd.Close()
			wr, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer wr.Close()

			ts := time.Now()
			zr, err := frame.NewReader(rd, a.cfg.Frame(a.log))
			if err != nil {
				return err
			}
			n, err := io.Copy(wr, zr)
			if err != nil {
				return err
			}
			if err := zr.Close(); err != nil {
				return err
			}
			a.log.Info().
				Str("method", zr.Method().String()).
				Int64("raw", n).
				Dur("elapsed", time.Since(ts)).
				Msg("decompressed")
			return wr.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default standard output)")
	return cmd
}
