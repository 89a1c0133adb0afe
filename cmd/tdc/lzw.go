// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/lzw"
)

func newLZWCmd(a *app) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "lzw [file]",
		Short: "Convert between a text and its LZW debug code",
		Long: `Lzw writes the LZW codes of the input in the debug text code, where printable
bytes are quoted and every other code is a decimal number, each followed by
a comma. With --decode, the debug code is read and the text is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if decode {
				return lzw.DecodeDebug(bytes.NewReader(input), cmd.OutOrStdout())
			}
			codes := lzw.Compress(input)
			a.log.Debug().Int("codes", len(codes)).Msg("compressed")
			return lzw.EncodeDebug(cmd.OutOrStdout(), codes)
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode debug code")
	return cmd
}
