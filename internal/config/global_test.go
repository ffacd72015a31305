package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/pubs/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "pubs", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.SitePath != "" || cfg.LogLevel != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	data := "site_path: /srv/site\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.SitePath != "/srv/site" || cfg.LogLevel != "debug" {
		t.Errorf("LoadGlobalConfig() = %+v", cfg)
	}

	// Cached: a later edit is not seen until reset.
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	again, _ := LoadGlobalConfig()
	if again.LogLevel != "debug" {
		t.Errorf("expected cached config, got %+v", again)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte("site_path: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestGlobalConfig_Set(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"site path", "site_path", dir, dir, false},
		{"missing site path", "site_path", filepath.Join(dir, "nope"), "", true},
		{"log level is lowercased", "log_level", " DEBUG ", "debug", false},
		{"unknown log level", "log_level", "loud", "", true},
		{"unknown key", "s2_api_key", "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g GlobalConfig
			err := g.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got, _ := g.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveGlobalConfig_RoundTrip(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SaveGlobalConfig(&GlobalConfig{SitePath: "/srv/site", LogLevel: "warn"}); err != nil {
		t.Fatalf("SaveGlobalConfig() error = %v", err)
	}

	ResetGlobalConfigCache()
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.SitePath != "/srv/site" || cfg.LogLevel != "warn" {
		t.Errorf("LoadGlobalConfig() = %+v", cfg)
	}
}

func TestGlobalKeys(t *testing.T) {
	got := GlobalKeys()
	if len(got) != 2 || got[0] != "log_level" || got[1] != "site_path" {
		t.Errorf("GlobalKeys() = %v", got)
	}
}
