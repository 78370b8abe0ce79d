package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with string durations for TOML.
type FileConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Async       *bool  `toml:"async"`
	PingTimeout string `toml:"ping_timeout"`
	HTTPTimeout string `toml:"http_timeout"`
	Interval    string `toml:"interval"`
	LogLevel    string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.clue/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".clue", "config.toml")
	}
	return ""
}

// ApplyFileConfig copies file settings into cfg, leaving flags that were set
// explicitly (changed) untouched.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setBool("async", fc.Async, &cfg.Async)

	if err := s.setDuration("ping-timeout", fc.PingTimeout, &cfg.PingTimeout); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
