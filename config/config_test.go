// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdcgo/textcomp/frame"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tdc.json")
	data := `{"method": "esp", "block_size": 4096, "workers": 3, "log_level": "debug"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	opts, err := Load(path)
	require.NoError(t, err)
	want := Default()
	want.Method = MethodESP
	want.BlockSize = 4096
	want.Workers = 3
	want.LogLevel = "debug"
	assert.Equal(t, want, opts)

	lvl, err := opts.Level()
	assert.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func TestLoadMissing(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"method": "esp"}`), 0644))
	t.Setenv(EnvPath, path)

	opts, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, MethodESP, opts.Method)
}

func TestLoadErrors(t *testing.T) {
	for _, data := range []string{
		`{"method": "esp"`,
		`{"method": "gzip"}`,
		`{"block_size": -1}`,
		`{"workers": 0}`,
		`{"log_level": "loud"}`,
		`{"log_format": "xml"}`,
		`{"unknown": 1}`,
		`{"workers": "many"}`,
	} {
		path := filepath.Join(t.TempDir(), "tdc.json")
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		_, err := Load(path)
		assert.Error(t, err, "Load(%s)", data)
	}
}

func TestDecode(t *testing.T) {
	opts := Default()
	err := opts.Decode(map[string]interface{}{
		"method":     "esp",
		"block_size": "65536", // Weakly typed input is accepted
	})
	assert.NoError(t, err)
	assert.Equal(t, MethodESP, opts.Method)
	assert.Equal(t, 65536, opts.BlockSize)
	assert.NoError(t, opts.Validate())
}

func TestFrame(t *testing.T) {
	opts := Default()
	opts.Method = MethodESP
	opts.BlockSize = 1 << 12
	opts.Workers = 2
	fo := opts.Frame(zerolog.Nop())
	assert.Equal(t, frame.ESP, fo.Method)
	assert.Equal(t, 1<<12, fo.BlockSize)
	assert.Equal(t, 2, fo.Workers)
	require.NotNil(t, fo.Logger)

	input := []byte("abracadabra abracadabra")
	data, err := frame.Compress(input, fo)
	require.NoError(t, err)
	got, err := frame.Decompress(data, Default().Frame(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
