package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pincel/event"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pincel.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, event.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, DrainAll, cfg.Drain)
	assert.Equal(t, "escape", cfg.QuitKey)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
name = "demo"
width = 800
height = 600
drain = "one"
frame_interval = "5ms"
quit_key = "q"
bogus = 1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, uint16(800), cfg.Width)
	assert.Equal(t, uint16(600), cfg.Height)
	assert.Equal(t, DrainOne, cfg.Drain)
	assert.Equal(t, 5*time.Millisecond, cfg.FrameInterval.Duration)
	assert.Equal(t, "q", cfg.QuitKey)
	// Untouched keys keep their defaults
	assert.Equal(t, event.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, "auto", cfg.Backend)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `width = `},
		{"drain", `drain = "some"`},
		{"duration", `frame_interval = "soon"`},
		{"capacity", `capacity = 100`},
		{"quit key", `quit_key = "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"capacity at code max", func(c *Config) { c.Capacity = int(event.CodeMax) }},
		{"capacity above table", func(c *Config) { c.Capacity = 1 << 17 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative frame", func(c *Config) { c.FrameInterval.Duration = -time.Millisecond }},
		{"zero frame", func(c *Config) { c.FrameInterval.Duration = 0 }},
		{"unknown drain", func(c *Config) { c.Drain = DrainPolicy(7) }},
		{"unknown quit key", func(c *Config) { c.QuitKey = "hyper" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseDrainPolicy(t *testing.T) {
	p, err := ParseDrainPolicy("all")
	require.NoError(t, err)
	assert.Equal(t, DrainAll, p)

	p, err = ParseDrainPolicy("one")
	require.NoError(t, err)
	assert.Equal(t, DrainOne, p)

	_, err = ParseDrainPolicy("half")
	assert.Error(t, err)

	text, err := DrainOne.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "one", string(text))
}
