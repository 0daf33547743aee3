// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Version = "test"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.Server.URL == "" {
		t.Error("Server URL should not be empty")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	ResetGlobalForTesting()
	_ = Global()

	customCfg := Default()
	customCfg.Version = "custom-version"
	customCfg.Chat.DefaultModel = "custom-model"
	SetGlobal(customCfg)

	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
	if result.Chat.DefaultModel != "custom-model" {
		t.Errorf("Expected model 'custom-model', got '%s'", result.Chat.DefaultModel)
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Version == "" {
		t.Error("Default config should have a version")
	}
	if cfg.Server.URL != "http://127.0.0.1:11434" {
		t.Errorf("Expected default server URL, got '%s'", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs == 0 {
		t.Error("Default config should have a request timeout")
	}
	if cfg.History.Enabled {
		t.Error("History persistence should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty server URL",
			mutate:  func(c *Config) { c.Server.URL = "" },
			wantErr: true,
		},
		{
			name:    "URL without scheme",
			mutate:  func(c *Config) { c.Server.URL = "localhost:11434" },
			wantErr: true,
		},
		{
			name:    "https URL",
			mutate:  func(c *Config) { c.Server.URL = "https://ollama.internal:11434" },
			wantErr: false,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.TimeoutSecs = -1 },
			wantErr: true,
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "invalid" },
			wantErr: true,
		},
		{
			name:    "negative max transcripts",
			mutate:  func(c *Config) { c.History.MaxTranscripts = -5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_EnvOverrides tests environment variable overrides.
func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OLLAMACHAT_URL", "http://10.0.0.5:11434")
	t.Setenv("OLLAMACHAT_MODEL", "qwen2.5:7b")
	t.Setenv("OLLAMACHAT_THEME", "light")
	t.Setenv("OLLAMACHAT_PLAIN", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://10.0.0.5:11434" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Chat.DefaultModel != "qwen2.5:7b" {
		t.Errorf("Chat.DefaultModel = %q", cfg.Chat.DefaultModel)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if !cfg.UI.Plain {
		t.Error("UI.Plain should be true")
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("server.url")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "http://127.0.0.1:11434" {
		t.Errorf("Get('server.url') = %v", val)
	}

	err = cfg.Set("chat.default_model", "llama3.2")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, _ = cfg.Get("chat.default_model")
	if val != "llama3.2" {
		t.Errorf("Get('chat.default_model') after Set = %v", val)
	}

	err = cfg.Set("server.timeout_secs", "300")
	if err != nil {
		t.Fatalf("Set() with string int error = %v", err)
	}
	if cfg.Server.TimeoutSecs != 300 {
		t.Errorf("TimeoutSecs = %d, want 300", cfg.Server.TimeoutSecs)
	}

	_, err = cfg.Get("invalid.key")
	if err == nil {
		t.Error("Get() with invalid key should return error")
	}
}

// TestConfig_SaveLoadRoundTrip tests that a saved TOML config loads back.
func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Server.URL = "http://192.168.1.50:11434"
	cfg.Chat.DefaultModel = "mistral"
	cfg.History.Enabled = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Server.URL != cfg.Server.URL {
		t.Errorf("Server.URL = %q, want %q", loaded.Server.URL, cfg.Server.URL)
	}
	if loaded.Chat.DefaultModel != "mistral" {
		t.Errorf("Chat.DefaultModel = %q", loaded.Chat.DefaultModel)
	}
	if !loaded.History.Enabled {
		t.Error("History.Enabled should survive the round trip")
	}
}

// TestConfig_LoadFromPathInvalid tests that a broken config is rejected.
func TestConfig_LoadFromPathInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nurl = \"ftp://wrong\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath should reject a non-http scheme")
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	original.Version = "original"

	clone := original.Clone()
	clone.Version = "cloned"

	if original.Version != "original" {
		t.Error("Clone should create an independent copy")
	}
}

// TestWatcher_ReloadOnChange tests that the watcher picks up file changes.
func TestWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	w, err := NewWatcherForPath(path)
	if err != nil {
		t.Fatalf("NewWatcherForPath failed: %v", err)
	}
	defer w.Close()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	w.Start()

	cfg.Chat.DefaultModel = "llama3.2"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("second SaveTOML failed: %v", err)
	}

	select {
	case c := <-reloaded:
		if c.Chat.DefaultModel != "llama3.2" {
			t.Errorf("reloaded model = %q", c.Chat.DefaultModel)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never delivered the reloaded config")
	}
}
