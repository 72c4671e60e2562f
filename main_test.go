package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, rest, err := parseFlags("simulate", []string{"--config", "/tmp/pad.yml", "-o", "stdout", "trace.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pad.yml", opts.config)
	assert.Equal(t, "stdout", opts.output)
	assert.False(t, opts.debug)
	assert.Equal(t, []string{"trace.txt"}, rest)

	_, _, err = parseFlags("run", []string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)

	_, _, err = parseFlags("run", []string{"--bogus"})
	assert.Error(t, err)
}

func TestLoadConfig_OutputOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0644))

	cfg, err := loadConfig(&options{config: path, output: OutputStdout})
	require.NoError(t, err)
	assert.Equal(t, OutputStdout, cfg.Output)

	_, err = loadConfig(&options{config: path, output: OutputSerial})
	assert.ErrorContains(t, err, "--output")
}

func TestAnnounce(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, announce(&buf))
	assert.Equal(t, "Keyboard starting\n", buf.String())

	err := announce(failingWriter{})
	assert.ErrorContains(t, err, "write serial banner")
}

func TestOpenSink_Stdout(t *testing.T) {
	cfg, err := ParseConfig([]byte(minimalConfig + "output: stdout\n"))
	require.NoError(t, err)

	sink, closeSink, err := openSink(cfg)
	require.NoError(t, err)
	defer closeSink()
	assert.IsType(t, &TextSink{}, sink)
}
