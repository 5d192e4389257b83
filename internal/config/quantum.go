// Package config holds all Quantum Edge configuration: the Gemini
// credential, per-tool model overrides, the video polling policy, and the
// ambient logging/audio settings. Configuration is loaded once at startup
// and passed down; a file watcher can reload it on change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Quantum Edge configuration.
type Config struct {
	// Gemini API credential. Overridden by GEMINI_API_KEY.
	APIKey string `yaml:"api_key"`

	// Models configures which remote model backs each capability.
	Models ModelsConfig `yaml:"models"`

	// Video configures the long-running video operation poll loop.
	Video VideoConfig `yaml:"video"`

	// Audio configures TTS voice and local playback.
	Audio AudioConfig `yaml:"audio"`

	// Location configures the best-effort geolocation lookup.
	Location LocationConfig `yaml:"location"`

	// Logging configures the category file logger.
	Logging LoggingConfig `yaml:"logging"`

	// StateDir is where the profile, transcripts, and logs live.
	// Defaults to ~/.qedge.
	StateDir string `yaml:"state_dir"`
}

// ModelsConfig names the remote model for each capability.
type ModelsConfig struct {
	Financial  string `yaml:"financial"`
	Travel     string `yaml:"travel"`
	Image      string `yaml:"image"`
	ImageEdit  string `yaml:"image_edit"`
	Video      string `yaml:"video"`
	Creative   string `yaml:"creative"`
	Transcribe string `yaml:"transcribe"`
	Song       string `yaml:"song"`
	TTS        string `yaml:"tts"`
}

// VideoConfig bounds the video-generation poll loop. The remote operation
// is polled every PollInterval until done, up to MaxPolls attempts.
type VideoConfig struct {
	PollInterval string `yaml:"poll_interval"`
	MaxPolls     int    `yaml:"max_polls"`
	Resolution   string `yaml:"resolution"`
}

// AudioConfig configures speech synthesis and playback.
type AudioConfig struct {
	Voice string `yaml:"voice"`
	// Player is the playback binary; empty means autodetect.
	Player string `yaml:"player"`
}

// LocationConfig configures the IP geolocation lookup used to bias
// place grounding for the travel persona.
type LocationConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: ModelsConfig{
			Financial:  "gemini-2.5-pro",
			Travel:     "gemini-2.5-flash",
			Image:      "imagen-4.0-generate-001",
			ImageEdit:  "gemini-2.5-flash-image",
			Video:      "veo-3.1-fast-generate-preview",
			Creative:   "gemini-2.5-flash",
			Transcribe: "gemini-2.5-flash",
			Song:       "gemini-2.5-flash",
			TTS:        "gemini-2.5-flash-preview-tts",
		},
		Video: VideoConfig{
			PollInterval: "10s",
			MaxPolls:     90,
			Resolution:   "720p",
		},
		Audio: AudioConfig{
			Voice: "Kore",
		},
		Location: LocationConfig{
			Enabled: true,
			URL:     "http://ip-api.com/json/",
			Timeout: "5s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file path inside the state dir.
func DefaultPath() string {
	return filepath.Join(DefaultStateDir(), "config.yaml")
}

// DefaultStateDir returns ~/.qedge, falling back to the working directory.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qedge"
	}
	return filepath.Join(home, ".qedge")
}

// Load loads configuration from a YAML file, merged over defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if dir := os.Getenv("QEDGE_STATE_DIR"); dir != "" {
		c.StateDir = dir
	}
}

func (c *Config) applyDefaults() {
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}
	if c.Video.MaxPolls <= 0 {
		c.Video.MaxPolls = 90
	}
	if c.Audio.Voice == "" {
		c.Audio.Voice = "Kore"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured (set GEMINI_API_KEY or api_key in config.yaml)")
	}
	return nil
}

// PollInterval returns the video poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Video.PollInterval)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LocationTimeout returns the geolocation lookup timeout as a duration.
func (c *Config) LocationTimeout() time.Duration {
	d, err := time.ParseDuration(c.Location.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
