package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfig_ValidTOML(t *testing.T) {
	configPath := writeConfig(t, "dircmp.toml", `workers = 6
ignore_hidden = true
exclude = [
  "*.tmp",
  "*.log",
  ".git/",
  "node_modules/",
]
context = 5
color = "never"
debounce = "1s"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expectedExclude := []string{"*.tmp", "*.log", ".git/", "node_modules/"}
	if len(cfg.Exclude) != len(expectedExclude) {
		t.Fatalf("Expected %d exclude patterns, got %d", len(expectedExclude), len(cfg.Exclude))
	}
	for i, expected := range expectedExclude {
		if cfg.Exclude[i] != expected {
			t.Errorf("Exclude[%d]: expected %q, got %q", i, expected, cfg.Exclude[i])
		}
	}

	if cfg.Workers != 6 {
		t.Errorf("Expected workers 6, got %d", cfg.Workers)
	}
	if !cfg.IgnoreHidden {
		t.Error("Expected ignore_hidden to be true")
	}
	if cfg.Context != 5 {
		t.Errorf("Expected context 5, got %d", cfg.Context)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Expected color %q, got %q", ColorNever, cfg.Color)
	}
	d, err := cfg.DebounceInterval()
	if err != nil || d != time.Second {
		t.Errorf("Expected debounce 1s, got %v (%v)", d, err)
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	configPath := writeConfig(t, "dircmp.yaml", `workers: 2
exclude:
  - "build/"
  - "*.o"
color: always
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Expected workers 2, got %d", cfg.Workers)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "build/" || cfg.Exclude[1] != "*.o" {
		t.Errorf("Unexpected exclude patterns: %v", cfg.Exclude)
	}
	if cfg.Color != ColorAlways {
		t.Errorf("Expected color %q, got %q", ColorAlways, cfg.Color)
	}

	// Keys absent from the file keep their defaults
	if cfg.Context != 3 {
		t.Errorf("Expected default context 3, got %d", cfg.Context)
	}
	if cfg.Debounce != "300ms" {
		t.Errorf("Expected default debounce 300ms, got %q", cfg.Debounce)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/dircmp.toml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	// Every file is compared unless the config asks otherwise
	if cfg.Exclude == nil || len(cfg.Exclude) != 0 {
		t.Errorf("Default config should have an empty exclude list, got %v", cfg.Exclude)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Expected default color %q, got %q", ColorAuto, cfg.Color)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configPath := writeConfig(t, "invalid.toml", `exclude = [
  "*.tmp"
  invalid syntax
  "*.log"
]`)

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("LoadConfig should return error for invalid TOML")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "invalid.yaml", "exclude: [unclosed\n")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	for _, name := range []string{"empty.toml", "empty.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, name, ""))
			if err != nil {
				t.Fatalf("LoadConfig failed for empty config: %v", err)
			}

			// Empty config should result in empty exclude patterns (not nil)
			if cfg.Exclude == nil {
				t.Error("Exclude should not be nil")
			}
			if len(cfg.Exclude) != 0 {
				t.Errorf("Expected no exclude patterns, got %v", cfg.Exclude)
			}
		})
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative workers", "workers: -1\n"},
		{"negative context", "context: -2\n"},
		{"unknown color", "color: sometimes\n"},
		{"bad debounce", "debounce: soon\n"},
		{"negative debounce", "debounce: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "dircmp.yaml", tt.content))
			if err == nil {
				t.Errorf("LoadConfig should reject %s", tt.name)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	if len(cfg.Exclude) != 0 || cfg.IgnoreHidden {
		t.Errorf("Default config should not filter any file, got exclude=%v ignoreHidden=%v",
			cfg.Exclude, cfg.IgnoreHidden)
	}

	d, err := cfg.DebounceInterval()
	if err != nil || d != 300*time.Millisecond {
		t.Errorf("Expected default debounce 300ms, got %v (%v)", d, err)
	}
}
