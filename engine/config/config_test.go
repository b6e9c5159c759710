package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, [3]float32{0, 1, -2}, cfg.Camera.Position)
	assert.Equal(t, "cumulative", cfg.Wave.Mode)
}

func TestDecodeKeepsDefaultsForMissingKeys(t *testing.T) {
	src := `
[window]
title = "sea"

[wave]
seed = 42
mode = "from_base"
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "sea", cfg.Window.Title)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, uint64(42), cfg.Wave.Seed)
	assert.Equal(t, "from_base", cfg.Wave.Mode)
	assert.InDelta(t, 0.04, float64(cfg.Wave.AmplitudeMax), 1e-9)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "[window]\ncolour = 1\n"},
		{"bad backend", "[renderer]\nbackend = \"vulkan\"\n"},
		{"bad msaa", "[renderer]\nmsaa = 2\n"},
		{"inverted clip planes", "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"inverted amplitude", "[wave]\namplitude_min = 0.5\namplitude_max = 0.1\n"},
		{"bad mode", "[wave]\nmode = \"sometimes\"\n"},
		{"negative frames", "[engine]\nframes = -1\n"},
		{"not toml", "window = [["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestEncodeRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Wave.Seed = 7
	cfg.Engine.Frames = 3

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	path := filepath.Join(t.TempDir(), "aviator.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWatchDeliversValidReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aviator.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nprofiling = false\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[renderer]\nmsaa = 3\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nprofiling = true\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Engine.Profiling {
				cancel()
				for range updates {
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
