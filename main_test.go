package main

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseArgs_Defaults(t *testing.T) {
	opts, err := parseArgs(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, modeTerm, opts.mode)
	require.Equal(t, DefaultConfig(), opts.cfg)
}

func TestParseArgs_FlagsOverride(t *testing.T) {
	opts, err := parseArgs([]string{
		"-mode", "print", "-frames", "4", "-spawn", "0.2",
		"-min-len", "2", "-max-len", "6", "-interval", "50ms",
		"-theme", "cyan", "-chars", "01", "-seed", "5", "-width", "30", "-height", "9",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, modePrint, opts.mode)
	require.Equal(t, 4, opts.frames)
	require.Equal(t, 0.2, opts.cfg.SpawnChance)
	require.Equal(t, Range{2, 6}, opts.cfg.Length)
	require.Equal(t, 50*time.Millisecond, opts.cfg.FrameInterval)
	require.Equal(t, "cyan", opts.cfg.Theme)
	require.Equal(t, "01", opts.cfg.Charset)
	require.Equal(t, int64(5), opts.cfg.Seed)
	require.Equal(t, 30, opts.cfg.Width)
	require.Equal(t, 9, opts.cfg.Height)
}

func TestParseArgs_FlagsBeatConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rain.yaml")
	file := DefaultConfig()
	file.SpawnChance = 0.4
	file.Theme = "red"
	require.NoError(t, file.Save(path))

	opts, err := parseArgs([]string{"-config", path, "-theme", "white"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 0.4, opts.cfg.SpawnChance)
	require.Equal(t, "white", opts.cfg.Theme)
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{"-mode", "hologram"}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = parseArgs([]string{"-min-len", "0"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errInvalidConfig)

	_, err = parseArgs([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = parseArgs([]string{"-h"}, &bytes.Buffer{})
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestListThemes(t *testing.T) {
	var out bytes.Buffer
	listThemes(&out)
	for _, th := range themes {
		require.Contains(t, out.String(), th.Name)
	}
}

func TestTicksPerSecond(t *testing.T) {
	require.Equal(t, 60, ticksPerSecond(time.Second/60))
	require.Equal(t, 13, ticksPerSecond(80*time.Millisecond))
	require.Equal(t, 1, ticksPerSecond(5*time.Second))
}
