package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Runtime.FrameIntervalMs != 16 {
		t.Errorf("Runtime.FrameIntervalMs = %d, want 16", cfg.Runtime.FrameIntervalMs)
	}
	if !cfg.TUI.AltScreen {
		t.Error("TUI.AltScreen should be true by default")
	}
	if cfg.Storage.Backend != "bolt" {
		t.Errorf("Storage.Backend = %q, want bolt", cfg.Storage.Backend)
	}
	if cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Demo.ClockIntervalMs != 1000 {
		t.Errorf("Demo.ClockIntervalMs = %d, want 1000", cfg.Demo.ClockIntervalMs)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if got := cfg.Runtime.FrameInterval(); got != 16*time.Millisecond {
		t.Errorf("FrameInterval() = %v, want 16ms", got)
	}
	if got := cfg.Demo.ClockInterval(); got != time.Second {
		t.Errorf("ClockInterval() = %v, want 1s", got)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got, want := ConfigDir(), "/custom/config/reactor"; got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		if got, want := ConfigDir(), filepath.Join(home, ".config", "reactor"); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := ConfigFile(), "/custom/config/reactor/config.yaml"; got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestResolvePaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	tests := []struct {
		name string
		cfg  StorageConfig
		want string
	}{
		{"bolt default", StorageConfig{Backend: "bolt"}, "/xdg/reactor/state.db"},
		{"file default", StorageConfig{Backend: "file"}, "/xdg/reactor/state"},
		{"explicit", StorageConfig{Backend: "bolt", Path: "/tmp/s.db"}, "/tmp/s.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolvePath(); got != tt.want {
				t.Errorf("ResolvePath() = %q, want %q", got, tt.want)
			}
		})
	}

	logging := LoggingConfig{}
	if got := logging.ResolveDir(); got != "/xdg/reactor" {
		t.Errorf("ResolveDir() = %q, want /xdg/reactor", got)
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Storage.Backend != "bolt" {
		t.Errorf("Get().Storage.Backend = %q, want bolt", cfg.Storage.Backend)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("storage.backend", "redis")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for an unknown backend")
	}
	errs, ok := err.(ValidationErrors)
	if !ok || len(errs) != 1 || errs[0].Field != "storage.backend" {
		t.Errorf("Load() error = %v, want one storage.backend error", err)
	}

	// Get falls back to defaults.
	if got := Get().Storage.Backend; got != "bolt" {
		t.Errorf("Get() fallback backend = %q, want bolt", got)
	}
}
