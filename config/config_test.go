package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.FrameDelay() != time.Second {
		t.Errorf("FrameDelay = %v, want 1s", cfg.FrameDelay())
	}
	if cfg.Raster.Background != "#DCB579" {
		t.Errorf("Background = %q, want %q", cfg.Raster.Background, "#DCB579")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"control rune", func(c *Config) { c.Theme.Symbols.BlackStone = 7 }},
		{"zero delay", func(c *Config) { c.Replay.FrameDelayMs = 0 }},
		{"zero canvas", func(c *Config) { c.Raster.BoardWidth = 0 }},
		{"zero score font", func(c *Config) { c.Raster.ScoreFontPx = 0 }},
		{"negative score font", func(c *Config) { c.Raster.ScoreFontPx = -4 }},
		{"bad colour", func(c *Config) { c.Raster.Line = "black" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig
		tt.mutate(&cfg)
		err := cfg.Validate()
		var invalid *InvalidConfig
		if !errors.As(err, &invalid) {
			t.Errorf("%s: got %v, want *InvalidConfig", tt.name, err)
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"replay": {"frame_delay_ms": 250}, "raster": {"board_width": 600}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FrameDelay() != 250*time.Millisecond {
		t.Errorf("FrameDelay = %v, want 250ms", cfg.FrameDelay())
	}
	if cfg.Raster.BoardWidth != 600 {
		t.Errorf("BoardWidth = %d, want 600", cfg.Raster.BoardWidth)
	}
	if cfg.Raster.BoardHeight != DefaultRaster.BoardHeight {
		t.Errorf("BoardHeight = %d, want default %d", cfg.Raster.BoardHeight, DefaultRaster.BoardHeight)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path)
	var invalid *InvalidConfig
	if !errors.As(err, &invalid) {
		t.Errorf("got %v, want *InvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSaveCfgFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")
	cfg := DefaultConfig
	cfg.Replay.FrameDelayMs = 500

	if err := saveCfgFile(path, &cfg, 0644); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Replay.FrameDelayMs != 500 {
		t.Errorf("FrameDelayMs = %d, want 500", loaded.Replay.FrameDelayMs)
	}
	if loaded.Theme.Symbols.StarPoint != '◦' {
		t.Errorf("StarPoint = %q, want %q", loaded.Theme.Symbols.StarPoint, '◦')
	}
}
