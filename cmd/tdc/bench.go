// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/spf13/cobra"
	"github.com/tdcgo/textcomp/internal/tool/bench"
)

const (
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5,1e6"
)

var (
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[v])
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	var s []string
	for k := range bench.Encoders {
		if k != "lzw" {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	return strings.Join(append([]string{"lzw"}, s...), ",") // Ensure "lzw" always appears first
}

func defaultFiles() string {
	s := bench.Generators()
	sort.Strings(s)
	return strings.Join(s, ",")
}

func newBenchCmd(a *app) *cobra.Command {
	var f struct{ tests, codecs, paths, files, levels, sizes string }
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare encode speed, decode speed and ratio across codecs",
		Long: `Bench compares codecs on files or generated inputs. Individual
implementations are referred to as codecs; the first codec is the reference
for the delta column.

	BENCHMARK: ratio
		benchmark               lzw ratio  delta      esp ratio  delta
		gen:words:6:1e4             2.41x  1.00x          2.02x  0.84x`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sep = regexp.MustCompile("[,:]")
			var tests, levels, sizes []int
			codecs := sep.Split(f.codecs, -1)
			files := strings.Split(f.files, ",")
			for _, s := range sep.Split(f.tests, -1) {
				if _, ok := testToEnum[s]; !ok {
					return fmt.Errorf("invalid test %q", s)
				}
				tests = append(tests, testToEnum[s])
			}
			for _, s := range sep.Split(f.levels, -1) {
				lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
				if err != nil {
					return fmt.Errorf("invalid level %q", s)
				}
				levels = append(levels, int(lvl))
			}
			for _, s := range sep.Split(f.sizes, -1) {
				var size int
				if nf, err := strconv.ParsePrefix(s, strconv.AutoParse); err == nil {
					size = int(nf)
				}
				sizes = append(sizes, size)
			}
			if f.paths != "" {
				bench.Paths = strings.Split(f.paths, ",")
			}

			ts := time.Now()
			runBenchmarks(cmd.OutOrStdout(), files, codecs, tests, levels, sizes)
			a.log.Info().Dur("runtime", time.Since(ts)).Msg("benchmark done")
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.tests, "tests", defaultTests(), "List of different benchmark tests")
	fl.StringVar(&f.codecs, "codecs", defaultCodecs(), "List of codecs to benchmark")
	fl.StringVar(&f.paths, "paths", "", "List of paths to search for test files")
	fl.StringVar(&f.files, "files", defaultFiles(), "List of input files or generators to benchmark")
	fl.StringVar(&f.levels, "levels", defaultLevels, "List of compression levels to benchmark")
	fl.StringVar(&f.sizes, "sizes", defaultSizes, "List of input sizes to benchmark")
	return cmd
}

func runBenchmarks(w io.Writer, files, codecs []string, tests, levels, sizes []int) {
	// Get lists of encoders and decoders that exist.
	var encs, decs []string
	for _, c := range codecs {
		if _, ok := bench.Encoders[c]; ok {
			encs = append(encs, c)
		}
	}
	for _, c := range codecs {
		_, okEnc := bench.Encoders[c]
		_, okDec := bench.Decoders[c]
		if okEnc && okDec {
			decs = append(decs, c)
		}
	}

	for _, t := range tests {
		var results [][]bench.Result
		var names, codecs []string
		var title, suffix string

		// Check that we can actually do this bench.
		fmt.Fprintf(w, "BENCHMARK: %s\n", enumToTest[t])
		if len(encs) == 0 {
			fmt.Fprint(w, "\tSKIP: There are no encoders available.\n\n")
			continue
		}
		if len(decs) == 0 && t == bench.TestDecodeRate {
			fmt.Fprint(w, "\tSKIP: There are no decoders available.\n\n")
			continue
		}

		// Perform the bench. This may take some time.
		switch t {
		case bench.TestEncodeRate:
			codecs, title, suffix = encs, "MB/s", ""
			results, names = bench.BenchmarkEncoderSuite(encs, files, levels, sizes, nil)
		case bench.TestDecodeRate:
			codecs, title, suffix = decs, "MB/s", ""
			results, names = bench.BenchmarkDecoderSuite(decs, files, levels, sizes, nil)
		case bench.TestCompressRatio:
			codecs, title, suffix = encs, "ratio", "x"
			results, names = bench.BenchmarkRatioSuite(encs, files, levels, sizes, nil)
		}

		// Print all of the results.
		bench.PrintResults(w, results, names, codecs, title, suffix)
		fmt.Fprintln(w)
	}
}
