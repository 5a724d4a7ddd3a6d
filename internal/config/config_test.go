// ABOUTME: Tests for calibctl configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/undistort/internal/storage"
)

// isolate points XDG_CONFIG_HOME at a fresh temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("CALIBCTL_BACKEND", "")
	t.Setenv("CALIBCTL_DATA_DIR", "")
	t.Setenv("CALIBCTL_FILE", "")
	os.Unsetenv("CALIBCTL_BACKEND")
	os.Unsetenv("CALIBCTL_DATA_DIR")
	os.Unsetenv("CALIBCTL_FILE")
	return tmpDir
}

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "yaml" {
		t.Errorf("GetBackend() = %q, want %q", got, "yaml")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "badger"}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetFileDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetFile(); got != "calibrations.yaml" {
		t.Errorf("GetFile() = %q, want %q", got, "calibrations.yaml")
	}
}

func TestGetFileExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := &Config{File: "~/rigs/calibrations.yaml"}
	want := filepath.Join(home, "rigs", "calibrations.yaml")
	if got := cfg.GetFile(); got != want {
		t.Errorf("GetFile() = %q, want %q", got, want)
	}
}

func TestGetDataDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := &Config{}
	if got := cfg.GetDataDir(); got != storage.DataDir() {
		t.Errorf("GetDataDir() = %q, want %q", got, storage.DataDir())
	}
	if got := cfg.GetDataDir(); got != "/tmp/xdg-data/calibctl" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/xdg-data/calibctl")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/calibctl-test"}
	if got := cfg.GetDataDir(); got != "/tmp/calibctl-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/calibctl-test")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "/tmp/foo", want: "/tmp/foo"},
		{input: "data/calibrations", want: "data/calibrations"},
		{input: "~", want: home},
		{input: "~/data/calibrations", want: filepath.Join(home, "data/calibrations")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" || cfg.File != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Backend: "sqlite",
		DataDir: "/tmp/calibctl-data",
		File:    "/tmp/rig.yaml",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := (&Config{Backend: "sqlite", File: "/tmp/from-file.yaml"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("CALIBCTL_BACKEND", "badger")
	t.Setenv("CALIBCTL_DATA_DIR", "/tmp/from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "badger" {
		t.Errorf("Backend = %q, want badger", cfg.Backend)
	}
	if cfg.DataDir != "/tmp/from-env" {
		t.Errorf("DataDir = %q, want /tmp/from-env", cfg.DataDir)
	}
	if cfg.File != "/tmp/from-file.yaml" {
		t.Errorf("File = %q, want value from file", cfg.File)
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	isolate(t)

	if err := (&Config{Backend: "sqlite"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("CALIBCTL_BACKEND", "badger")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want value from file", cfg.Backend)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	if err := (&Config{Backend: "yaml"}).Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "calibctl")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "calibctl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolate(t)

	want := filepath.Join(tmpDir, "calibctl", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageBackends(t *testing.T) {
	tests := []struct {
		backend  string
		wantPath string
	}{
		{backend: "", wantPath: "rig.yaml"},
		{backend: "yaml", wantPath: "rig.yaml"},
		{backend: "sqlite", wantPath: "calibrations.db"},
		{backend: "badger", wantPath: "badger"},
	}

	for _, tt := range tests {
		t.Run("backend="+tt.backend, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfg := &Config{
				Backend: tt.backend,
				DataDir: tmpDir,
				File:    filepath.Join(tmpDir, "rig.yaml"),
			}

			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}
			defer repo.Close()

			if got := cfg.Location(); got != filepath.Join(tmpDir, tt.wantPath) {
				t.Errorf("Location() = %q, want %q", got, filepath.Join(tmpDir, tt.wantPath))
			}

			if _, err := repo.List(); err != nil {
				t.Errorf("List on fresh %q store failed: %v", cfg.GetBackend(), err)
			}
		})
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: t.TempDir()}

	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
	if got := cfg.Location(); got != "" {
		t.Errorf("Location() = %q, want empty for unknown backend", got)
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
