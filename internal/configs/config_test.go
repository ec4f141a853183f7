package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withConfigPath points the global settings at a temp config file and
// restores them when the test finishes.
func withConfigPath(t *testing.T, path string) {
	t.Helper()
	previous := ProjectVaultSettings
	ProjectVaultSettings = &VaultSettings{ConfigPath: path}
	t.Cleanup(func() { ProjectVaultSettings = previous })
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Token.Slot != 2 {
		t.Errorf("Expected default slot 2, got %d", config.Token.Slot)
	}
	if !config.Data.KeepBackup {
		t.Error("Expected backups to be kept by default")
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	withConfigPath(t, path)

	want := &Config{
		Token: TokenConfig{Slot: 1},
		Data:  DataConfig{KeepBackup: false},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got.Token.Slot != 1 {
		t.Errorf("Expected slot 1, got %d", got.Token.Slot)
	}
	if got.Data.KeepBackup {
		t.Error("Expected keep_backup=false to round trip")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "config.toml"))

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Token.Slot != 2 || !config.Data.KeepBackup {
		t.Errorf("Expected defaults for missing file, got %+v", config)
	}
}

func TestLoadConfig_InvalidSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	withConfigPath(t, path)

	content := "[token]\nslot = 7\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "slot") {
		t.Errorf("Expected invalid slot error, got: %v", err)
	}
}

func TestFindVaultRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, VaultDirName), 0700); err != nil {
		t.Fatalf("Failed to create vault directory: %v", err)
	}
	nested := filepath.Join(root, "projects", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested directory: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})

	// Walks up from a nested directory to the marker.
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	found, err := FindVaultRoot()
	if err != nil {
		t.Fatalf("FindVaultRoot failed: %v", err)
	}
	// Resolve symlinks: temp dirs may be behind one on some platforms.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("Expected vault root %s, got %s", wantRoot, gotRoot)
	}

	if err := InitVaultSettings(); err != nil {
		t.Fatalf("InitVaultSettings failed: %v", err)
	}
	if ProjectVaultSettings.StorePath == "" || ProjectVaultSettings.ConfigPath == "" {
		t.Errorf("Expected derived paths to be set, got %+v", ProjectVaultSettings)
	}
}
