// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdcgo/textcomp/config"
	"github.com/tdcgo/textcomp/internal/testutil"
)

// run executes the command line args with the given standard input and
// returns standard output and standard error.
func run(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompressFiles(t *testing.T) {
	dir := t.TempDir()
	input := testutil.Words(0, 2000)
	raw := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.tdc")
	unpacked := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(raw, input, 0644))

	for _, m := range []string{"lzw", "esp"} {
		_, logs, err := run(t, nil, "compress", "--method", m, "--block-size", "1Ki", "--log-format", "json", "-o", packed, raw)
		require.NoError(t, err, "method %s", m)
		assert.Contains(t, logs, `"message":"compressed"`)
		assert.Contains(t, logs, `"method":"`+m+`"`)

		_, _, err = run(t, nil, "decompress", "-o", unpacked, packed)
		require.NoError(t, err, "method %s", m)
		got, err := os.ReadFile(unpacked)
		require.NoError(t, err)
		assert.Equal(t, input, got, "method %s", m)
	}
}

func TestCompressPipe(t *testing.T) {
	input := []byte("TOBEORNOTTOBEORTOBEORNOT")
	packed, _, err := run(t, input, "compress", "--workers", "2", "--log-level", "warn")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(packed, "TDC1\x01"))

	out, _, err := run(t, []byte(packed), "decompress", "-")
	require.NoError(t, err)
	assert.Equal(t, string(input), out)

	_, _, err = run(t, []byte(packed[:len(packed)-1]), "decompress")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"method": "esp", "block_size": "4096"}`), 0644))

	packed, _, err := run(t, []byte("abcabcabc"), "compress", "--config", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(packed, "TDC1\x02"))

	// Flags take precedence over the file.
	packed, _, err = run(t, []byte("abcabcabc"), "compress", "--config", path, "-m", "lzw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(packed, "TDC1\x01"))
}

func TestFlagErrors(t *testing.T) {
	for i, args := range [][]string{
		{"compress", "--method", "gzip"},
		{"compress", "--block-size", "big"},
		{"compress", "--block-size", "0"},
		{"compress", "--workers", "-1"},
		{"compress", "--log-level", "loud"},
		{"compress", "--log-format", "xml"},
		{"index", "--storage", "btree", "--find", "a"},
		{"bench", "--tests", "speed"},
	} {
		_, _, err := run(t, nil, args...)
		assert.Error(t, err, "test %d", i)
	}
}

func TestIndex(t *testing.T) {
	out, _, err := run(t, []byte("aba"), "index", "--base", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SA[i]")
	assert.Contains(t, out, "LCP[i]")
	assert.Contains(t, out, "ISA[i]")
	assert.Equal(t, 6, strings.Count(out, "\n"))

	out, _, err = run(t, []byte("banana"), "index", "--bwt")
	require.NoError(t, err)
	assert.Equal(t, "\"annb$aa\"\n", out)

	for _, storage := range []string{"arena", "pointer"} {
		out, _, err = run(t, []byte("abracadabra"), "index", "--storage", storage, "-f", "a", "-f", "bra", "-f", "x")
		require.NoError(t, err)
		assert.Equal(t, "\"a\": 0 3 5 7 10\n\"bra\": 1 8\n\"x\":\n", out, "storage %s", storage)

		// Suffixes ending in a 0 byte must still be found.
		out, _, err = run(t, []byte("ab\x00ab\x00"), "index", "--storage", storage, "-f", "ab", "-f", "b\x00", "-f", "\x00")
		require.NoError(t, err)
		assert.Equal(t, "\"ab\": 0 3\n\"b\\x00\": 1 4\n\"\\x00\": 2 5\n", out, "storage %s", storage)
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	_, _, err = run(t, all, "index", "-f", "a")
	assert.Error(t, err)
}

func TestUnusedByte(t *testing.T) {
	var vectors = []struct {
		text     string
		patterns []string
		want     byte
		ok       bool
	}{
		{"", nil, 0, true},
		{"abc", nil, 0, true},
		{"a\x00b", nil, 1, true},
		{"a\x00b", []string{"\x01"}, 2, true},
		{"\x00\x01\x02", []string{"\x03\x04"}, 5, true},
	}
	for i, v := range vectors {
		got, ok := unusedByte([]byte(v.text), v.patterns)
		if got != v.want || ok != v.ok {
			t.Errorf("test %d, unusedByte(%q, %q) = (%d, %v), want (%d, %v)", i, v.text, v.patterns, got, ok, v.want, v.ok)
		}
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	if _, ok := unusedByte(all, nil); ok {
		t.Errorf("unusedByte over every byte value reported a free byte")
	}
}

func TestLZW(t *testing.T) {
	out, _, err := run(t, []byte("abcabcabc"), "lzw")
	require.NoError(t, err)
	assert.Equal(t, "'a','b','c',256,258,257,", out)

	out, _, err = run(t, []byte(out), "lzw", "-d")
	require.NoError(t, err)
	assert.Equal(t, "abcabcabc", out)

	_, _, err = run(t, []byte("'a',999,"), "lzw", "--decode")
	assert.Error(t, err)
}

func TestGrammar(t *testing.T) {
	out, _, err := run(t, []byte("abababab"), "grammar", "--rules")
	require.NoError(t, err)
	assert.Contains(t, out, "input:   8 bytes\n")
	assert.Contains(t, out, "256 -> 'a' 'b'\n")
}

func TestBench(t *testing.T) {
	out, _, err := run(t, nil, "bench", "--tests", "ratio", "--codecs", "lzw,esp", "--files", "gen:zeros", "--sizes", "4Ki")
	require.NoError(t, err)
	assert.Contains(t, out, "BENCHMARK: ratio")
	assert.Contains(t, out, "lzw ratio")
	assert.Contains(t, out, "gen:zeros:6:4Ki")
}
