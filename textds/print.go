// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package textds

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// Print writes a table with one row per text position and one column for
// each structure held by ds. Positions and suffix array values are offset by
// base, which is typically 0 or 1.
func (ds *TextDS) Print(w io.Writer, base int) error {
	width := 8
	if n := len(ds.text); n > 0 {
		if d := int(math.Log10(float64(n))) + 1; d > width {
			width = d
		}
	}

	type column struct {
		name   string
		values []int
		offset int
	}
	cols := []column{{"i", nil, base}}
	for _, c := range []column{
		{"SA[i]", ds.sa, base},
		{"Phi[i]", ds.phi, 0},
		{"PLCP[i]", ds.plcp, 0},
		{"LCP[i]", ds.lcp, 0},
		{"ISA[i]", ds.isa, base},
	} {
		if c.values != nil {
			cols = append(cols, c)
		}
	}

	pad := func(s string, fill byte) string {
		if len(s) >= width {
			return s
		}
		return strings.Repeat(string(fill), width-len(s)) + s
	}

	bw := bufio.NewWriter(w)
	for _, c := range cols {
		bw.WriteString(pad(c.name, ' ') + " | ")
	}
	bw.WriteByte('\n')
	for range cols {
		bw.WriteString(pad("", '-') + "-|-")
	}
	bw.WriteByte('\n')
	for i := range ds.text {
		for _, c := range cols {
			v := i
			if c.values != nil {
				v = c.values[i]
			}
			bw.WriteString(pad(strconv.Itoa(v+c.offset), ' ') + " | ")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
