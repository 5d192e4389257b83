package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Models.Financial != "gemini-2.5-pro" {
		t.Errorf("financial model = %q", cfg.Models.Financial)
	}
	if cfg.Models.Image != "imagen-4.0-generate-001" {
		t.Errorf("image model = %q", cfg.Models.Image)
	}
	if cfg.Models.Video != "veo-3.1-fast-generate-preview" {
		t.Errorf("video model = %q", cfg.Models.Video)
	}
	if cfg.Models.TTS != "gemini-2.5-flash-preview-tts" {
		t.Errorf("tts model = %q", cfg.Models.TTS)
	}
	if cfg.Video.Resolution != "720p" || cfg.Video.MaxPolls != 90 {
		t.Errorf("video config = %+v", cfg.Video)
	}
	if cfg.Audio.Voice != "Kore" {
		t.Errorf("voice = %q", cfg.Audio.Voice)
	}
	if cfg.PollInterval() != 10*time.Second {
		t.Errorf("poll interval = %v", cfg.PollInterval())
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("QEDGE_STATE_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Models.Travel != "gemini-2.5-flash" {
		t.Errorf("travel model = %q", cfg.Models.Travel)
	}
	if cfg.StateDir == "" {
		t.Error("state dir not defaulted")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_key: from-file
video:
  poll_interval: 3s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "from-file" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.PollInterval() != 3*time.Second {
		t.Errorf("poll interval = %v", cfg.PollInterval())
	}
	// Untouched sections keep their defaults.
	if cfg.Models.Song != "gemini-2.5-flash" {
		t.Errorf("song model = %q", cfg.Models.Song)
	}
	if cfg.Video.MaxPolls != 90 {
		t.Errorf("max polls = %d", cfg.Video.MaxPolls)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("api key = %q, want env to win", cfg.APIKey)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIKey = "saved-key"
	cfg.Video.MaxPolls = 12
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.APIKey != "saved-key" || loaded.Video.MaxPolls != 12 {
		t.Errorf("round trip lost values: %+v", loaded.Video)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("empty key validated")
	}
	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Video.PollInterval = "garbage"
	if cfg.PollInterval() != 10*time.Second {
		t.Errorf("bad interval fallback = %v", cfg.PollInterval())
	}
	cfg.Location.Timeout = "-5s"
	if cfg.LocationTimeout() != 5*time.Second {
		t.Errorf("bad timeout fallback = %v", cfg.LocationTimeout())
	}
}
