package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides, e.g. SCRUB_IMAGE_PROTOCOL.
const EnvPrefix = "SCRUB_"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults.
const (
	DefaultImageProtocol = "auto"
	DefaultDecodeWidth   = 640
	DefaultLogLevel      = "info"
	DefaultLogFormat     = LogFormatText
	DefaultNudgeSeconds  = 1.0
)

type Config struct {
	ImageProtocol string  `koanf:"image_protocol"` // "auto", "kitty", "sixel" or "halfblock"
	FFmpegPath    string  `koanf:"ffmpeg_path"`    // empty means search PATH
	DecodeWidth   int     `koanf:"decode_width"`   // frame width in pixels handed to the terminal
	LogLevel      string  `koanf:"log_level"`      // logrus level name
	LogFile       string  `koanf:"log_file"`       // empty means $XDG_STATE_HOME/scrub/scrub.log
	LogFormat     string  `koanf:"log_format"`     // "text" or "json"
	NudgeSeconds  float64 `koanf:"nudge_seconds"`  // slider movement of the nudge keys
	MPRIS         bool    `koanf:"mpris"`          // expose the player on the D-Bus session bus (Linux)

	// Keys maps action names to the keys bound to them, replacing the
	// defaults for those actions.
	Keys map[string][]string `koanf:"keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ImageProtocol: DefaultImageProtocol,
		DecodeWidth:   DefaultDecodeWidth,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		NudgeSeconds:  DefaultNudgeSeconds,
		MPRIS:         true,
	}
}

// Load reads the config files, the optional explicit file and then the
// SCRUB_* environment. Later sources win. A missing explicit file is an
// error; missing default files are skipped.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.FFmpegPath = expandPath(cfg.FFmpegPath)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.ImageProtocol = strings.ToLower(strings.TrimSpace(cfg.ImageProtocol))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps SCRUB_IMAGE_PROTOCOL to image_protocol.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Validate checks value ranges. Protocol names, log levels and key actions
// are validated by the packages that consume them.
func (c *Config) Validate() error {
	var errs []error
	if c.DecodeWidth < 16 {
		errs = append(errs, fmt.Errorf("decode_width %d: must be at least 16", c.DecodeWidth))
	}
	if c.NudgeSeconds <= 0 || math.IsInf(c.NudgeSeconds, 0) || math.IsNaN(c.NudgeSeconds) {
		errs = append(errs, fmt.Errorf("nudge_seconds %v: must be positive", c.NudgeSeconds))
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("log_format %q: must be %q or %q", c.LogFormat, LogFormatText, LogFormatJSON))
	}
	return errors.Join(errs...)
}

// JSONLogs reports whether logs are written as JSON.
func (c *Config) JSONLogs() bool { return c.LogFormat == LogFormatJSON }

// NudgeFrames converts NudgeSeconds to frames at fps, at least one.
func (c *Config) NudgeFrames(fps float64) int {
	if fps <= 0 {
		return 1
	}
	return max(int(math.Round(c.NudgeSeconds*fps)), 1)
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/scrub/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "scrub", "config.toml"))
	}

	// 2. ./config.toml (pwd)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
