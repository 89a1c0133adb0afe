// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/esp"
)

func newGrammarCmd(a *app) *cobra.Command {
	var rules bool
	cmd := &cobra.Command{
		Use:   "grammar [file]",
		Short: "Build the dependency sorted grammar of a text and report its size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			slp := esp.Build(text)
			if err := esp.DepSort(slp); err != nil {
				return err
			}
			var b bytes.Buffer
			if err := esp.Encode(&b, slp); err != nil {
				return err
			}

			rhs := make([]uint64, len(slp.Rules))
			for i, r := range slp.Rules {
				rhs[i] = r[1]
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input:   %d bytes\n", len(text))
			fmt.Fprintf(out, "rules:   %d\n", len(slp.Rules))
			fmt.Fprintf(out, "root:    %d\n", slp.Root)
			fmt.Fprintf(out, "classes: %d\n", esp.Rank(rhs).Classes())
			fmt.Fprintf(out, "encoded: %d bytes\n", b.Len())
			a.log.Debug().Int("rules", len(slp.Rules)).Int("encoded", b.Len()).Msg("built grammar")
			if rules {
				for i, r := range slp.Rules {
					fmt.Fprintf(out, "%d -> %s %s\n", i+256, symbol(r[0]), symbol(r[1]))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&rules, "rules", false, "Print every rule")
	return cmd
}

// symbol formats a terminal as a quoted byte and a nonterminal as its id.
func symbol(s uint64) string {
	if s < 256 {
		return fmt.Sprintf("%q", rune(s))
	}
	return fmt.Sprint(s)
}
