// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/suffixtree"
	"github.com/tdcgo/textcomp/textds"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		base     int
		bwt      bool
		patterns []string
		storage  string
	)
	cmd := &cobra.Command{
		Use:   "index [file]",
		Short: "Print the suffix array, LCP and related arrays of a text",
		Long: `Index appends a 0 sentinel to the input unless it already ends with one
and prints the SA, Phi, PLCP, LCP and ISA arrays. Inputs that contain 0
elsewhere are indexed as if the sentinel were the smallest of several 0 bytes.

With --find, occurrences of each pattern are looked up in a suffix tree
instead. The tree is terminated by the smallest byte value that occurs in
neither the input nor the patterns, so binary inputs are searched in full.
If no such byte exists, the command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(patterns) > 0 {
				term, ok := unusedByte(text, patterns)
				if !ok {
					return fmt.Errorf("no byte value is free to terminate the suffix tree")
				}
				a.log.Debug().Uint8("terminator", term).Msg("picked suffix tree terminator")
				text = append(text, term)

				var find func([]byte) []int
				switch storage {
				case "arena":
					find = suffixtree.Build(text, suffixtree.NewArena(text)).Find
				case "pointer":
					find = suffixtree.Build(text, suffixtree.NewPointer(text)).Find
				default:
					return fmt.Errorf("unknown storage %q", storage)
				}
				for _, p := range patterns {
					fmt.Fprintf(out, "%q:", p)
					for _, pos := range find([]byte(p)) {
						fmt.Fprintf(out, " %d", pos+base)
					}
					fmt.Fprintln(out)
				}
				return nil
			}

			if len(text) == 0 || text[len(text)-1] != 0 {
				text = append(text, 0)
			}
			ds, err := textds.New(text, textds.SA|textds.ISA|textds.LCP, nil)
			if err != nil {
				return err
			}
			a.log.Debug().Int("len", ds.Len()).Msg("built text index")
			if bwt {
				b := ds.BWT()
				_, err := fmt.Fprintf(out, "%q\n", bytes.ReplaceAll(b, []byte{0}, []byte("$")))
				return err
			}
			return ds.Print(out, base)
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "Offset added to printed positions")
	cmd.Flags().BoolVar(&bwt, "bwt", false, "Print the Burrows-Wheeler transform with $ for the sentinel")
	cmd.Flags().StringArrayVarP(&patterns, "find", "f", nil, "Pattern to look up (repeatable)")
	cmd.Flags().StringVar(&storage, "storage", "arena", "Suffix tree node layout (arena or pointer)")
	return cmd
}

// unusedByte returns the smallest byte value absent from text and patterns.
func unusedByte(text []byte, patterns []string) (byte, bool) {
	var seen [256]bool
	for _, c := range text {
		seen[c] = true
	}
	for _, p := range patterns {
		for i := 0; i < len(p); i++ {
			seen[p[i]] = true
		}
	}
	for c, ok := range seen {
		if !ok {
			return byte(c), true
		}
	}
	return 0, false
}
