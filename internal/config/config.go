package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultAppDir         = "taskpad"
	ConfigEnv             = "TASKPAD_CONFIG"

	defaultTickInterval = 10 * time.Second
	defaultTimeout      = 30 * time.Second
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
	Edit    string `toml:"edit"`
	Due     string `toml:"due"`
	Ask     string `toml:"ask"`
	Export  string `toml:"export"`
	Preview string `toml:"preview"`
}

type Assistant struct {
	Endpoint   string `toml:"endpoint"`
	APIVersion string `toml:"api_version"`
	Model      string `toml:"model"`
	APIKeyEnv  string `toml:"api_key_env"`
	Timeout    string `toml:"timeout"`
}

type Config struct {
	TickInterval  string    `toml:"tick_interval"`
	Notifications bool      `toml:"notifications"`
	ExportDir     string    `toml:"export_dir"`
	ExportFile    string    `toml:"export_file"`
	DateLayout    string    `toml:"date_layout"`
	LogFile       string    `toml:"log_file"`
	ServeAddr     string    `toml:"serve_addr"`
	Assistant     Assistant `toml:"assistant"`
	Keys          Keymap    `toml:"keys"`
}

// ResolveConfigPath returns $TASKPAD_CONFIG when set, otherwise
// config.toml under the user's config directory.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, DefaultAppDir, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Keys missing from the file keep their default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ExportFile == "" {
		cfg.ExportFile = "tasks.txt"
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Interval parses tick_interval. An invalid or non-positive value yields
// the default together with the parse error.
func (c Config) Interval() (time.Duration, error) {
	return parseDuration(c.TickInterval, defaultTickInterval)
}

func (a Assistant) TimeoutDuration() (time.Duration, error) {
	return parseDuration(a.Timeout, defaultTimeout)
}

// APIKey reads the key from the configured environment variable.
func (a Assistant) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

func parseDuration(v string, fallback time.Duration) (time.Duration, error) {
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, err
	}
	if d <= 0 {
		return fallback, fmt.Errorf("duration %q must be positive", v)
	}
	return d, nil
}

func Default() Config {
	return Config{
		TickInterval:  defaultTickInterval.String(),
		Notifications: true,
		ExportDir:     ".",
		ExportFile:    "tasks.txt",
		DateLayout:    "1/2/2006",
		ServeAddr:     "127.0.0.1:5000",
		Assistant: Assistant{
			Endpoint:   "https://generativelanguage.googleapis.com/",
			APIVersion: "v1beta",
			Model:      "gemini-2.5-flash",
			APIKeyEnv:  "GEMINI_API_KEY",
			Timeout:    defaultTimeout.String(),
		},
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Confirm: "enter",
			Cancel:  "esc",
			Edit:    "e",
			Due:     "t",
			Ask:     "?",
			Export:  "s",
			Preview: "p",
		},
	}
}
