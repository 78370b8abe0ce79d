package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Host:        "clue.example.com",
				Port:        8443,
				Async:       &trueVal,
				PingTimeout: "3s",
				HTTPTimeout: "20s",
				Interval:    "1m",
				LogLevel:    "debug",
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				Host:        "clue.example.com",
				Port:        8443,
				Async:       true,
				PingTimeout: 3 * time.Second,
				HTTPTimeout: 20 * time.Second,
				Interval:    time.Minute,
				LogLevel:    "debug",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Host: "file.example.com",
				Port: 9000,
			},
			changed: map[string]bool{"host": true},
			initial: Config{Host: "flag.example.com", Port: 80},
			expected: Config{
				Host: "flag.example.com",
				Port: 9000,
			},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{PingTimeout: "soon"},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := strings.TrimSpace(`
host = "192.168.1.20"
port = 8443
async = true
ping_timeout = "5s"
interval = "15s"
log_level = "warn"
`)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() unexpected error: %v", err)
	}
	if fc.Host != "192.168.1.20" {
		t.Errorf("Host = %v, want 192.168.1.20", fc.Host)
	}
	if fc.Port != 8443 {
		t.Errorf("Port = %v, want 8443", fc.Port)
	}
	if fc.Async == nil || !*fc.Async {
		t.Errorf("Async = %v, want true", fc.Async)
	}
	if fc.PingTimeout != "5s" {
		t.Errorf("PingTimeout = %v, want 5s", fc.PingTimeout)
	}
	if fc.Interval != "15s" {
		t.Errorf("Interval = %v, want 15s", fc.Interval)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFileConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFileConfig() expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("host = "), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("LoadFileConfig() expected error for malformed TOML")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if FileExists(path) {
		t.Errorf("FileExists(%q) = true before creation", path)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(path) {
		t.Errorf("FileExists(%q) = false after creation", path)
	}
}

func TestApplyFileConfig_NonPositivePortIsUnset(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, FileConfig{Port: -1}, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
	}
	if cfg.Port != 80 {
		t.Errorf("Port = %d, want default 80 kept", cfg.Port)
	}
}
