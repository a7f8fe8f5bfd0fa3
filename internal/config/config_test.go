// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// isolate points the config directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TOOLBENCH_HOME", dir)
	for _, o := range envOverrides {
		t.Setenv(o.env, "")
	}
	ResetGlobalForTesting()
	return dir
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Theme = "dark"
			SetGlobal(c)
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// TestConfig_ConcurrentMixedOperations mixes Global, SetGlobal and ReloadGlobal.
func TestConfig_ConcurrentMixedOperations(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 90; i++ {
		wg.Add(1)
		switch i % 3 {
		case 0:
			go func() {
				defer wg.Done()
				if Global() == nil {
					t.Error("Global() returned nil")
				}
			}()
		case 1:
			go func() {
				defer wg.Done()
				SetGlobal(Default())
			}()
		case 2:
			go func() {
				defer wg.Done()
				_ = ReloadGlobal()
			}()
		}
	}
	wg.Wait()
}

func TestConfig_GlobalInitialization(t *testing.T) {
	isolate(t)

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Expected version %s, got %s", CurrentVersion, cfg.Version)
	}
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	_ = Global()

	custom := Default()
	custom.Log.Level = "debug"
	SetGlobal(custom)

	if Global().Log.Level != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", Global().Log.Level)
	}
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.Format.Indent != 2 {
		t.Errorf("Expected default indent 2, got %d", cfg.Format.Indent)
	}
	if !cfg.UI.SidebarOpen {
		t.Error("Sidebar should be open by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, "", false},
		{"invalid theme", func(c *Config) { c.UI.Theme = "purple" }, "ui.theme", true},
		{"sidebar too narrow", func(c *Config) { c.UI.SidebarWidth = 4 }, "ui.sidebar_width", true},
		{"sidebar at max", func(c *Config) { c.UI.SidebarWidth = MaxSidebarWidth }, "", false},
		{"indent zero is compact", func(c *Config) { c.Format.Indent = 0 }, "", false},
		{"indent too large", func(c *Config) { c.Format.Indent = 11 }, "format.indent", true},
		{"tab delimiter", func(c *Config) { c.Format.CSVDelimiter = `\t` }, "", false},
		{"multi-char delimiter", func(c *Config) { c.Format.CSVDelimiter = ";;" }, "format.csv_delimiter", true},
		{"quote delimiter", func(c *Config) { c.Format.CSVDelimiter = `"` }, "format.csv_delimiter", true},
		{"bad epoch unit", func(c *Config) { c.Format.EpochUnit = "days" }, "format.epoch_unit", true},
		{"zero regex timeout", func(c *Config) { c.Regex.TimeoutMS = 0 }, "regex.timeout_ms", true},
		{"bad regex flag", func(c *Config) { c.Regex.Flags = "gx" }, "regex.flags", true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var errs ValidateErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Expected ValidateErrors, got %T", err)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, errs[0].Field)
			}
		})
	}
}

func TestConfig_ValidateAggregates(t *testing.T) {
	c := Default()
	c.UI.Theme = "x"
	c.Log.Level = "y"

	err := c.Validate()
	var errs ValidateErrors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("Expected 2 aggregated errors, got %v", err)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Expected errors joined by '; ', got %q", err.Error())
	}
}

// =============================================================================
// GET / SET
// =============================================================================

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("format.indent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != 2 {
		t.Errorf("Get('format.indent') = %v, want 2", val)
	}

	if err := cfg.Set("format.indent", "4"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Format.Indent != 4 {
		t.Errorf("Expected indent 4 after Set, got %d", cfg.Format.Indent)
	}

	if err := cfg.Set("ui.sidebar_open", "false"); err != nil {
		t.Fatalf("Set() bool error = %v", err)
	}
	if cfg.UI.SidebarOpen {
		t.Error("Expected sidebar_open false after Set")
	}

	if err := cfg.Set("ui.theme", "light"); err != nil || cfg.UI.Theme != "light" {
		t.Errorf("Expected theme light, got %s (%v)", cfg.UI.Theme, err)
	}
}

func TestConfig_GetSection(t *testing.T) {
	val, err := Default().Get("log")
	if err != nil {
		t.Fatalf("Get('log') error = %v", err)
	}
	if _, ok := val.(LogConfig); !ok {
		t.Errorf("Expected LogConfig, got %T", val)
	}
}

func TestConfig_SetErrors(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value any
	}{
		{"invalid.key", "x"},
		{"format.nope", "x"},
		{"format", "x"},
		{"format.indent", "four"},
		{"a.b.c", "x"},
		{"", "x"},
	}
	for _, tc := range tests {
		if err := cfg.Set(tc.key, tc.value); err == nil {
			t.Errorf("Set(%q) should fail", tc.key)
		}
	}

	if _, err := cfg.Get("invalid.key"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	want := []string{"format.indent", "log.level", "regex.timeout_ms", "ui.theme", "version"}
	for _, w := range want {
		found := false
		for _, k := range keys {
			if k == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected key %s in %v", w, keys)
		}
	}
	for _, k := range keys {
		if _, err := Default().Get(k); err != nil {
			t.Errorf("Get(%s) failed: %v", k, err)
		}
	}
}

func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.UI.Theme = "dark"

	if original.UI.Theme != "auto" {
		t.Error("Clone should create an independent copy")
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TOOLBENCH_THEME", "light")
	t.Setenv("TOOLBENCH_INDENT", "4")
	t.Setenv("TOOLBENCH_REGEX_TIMEOUT_MS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Theme != "light" {
		t.Errorf("Expected theme light, got %s", cfg.UI.Theme)
	}
	if cfg.Format.Indent != 4 {
		t.Errorf("Expected indent 4, got %d", cfg.Format.Indent)
	}
	if cfg.Regex.TimeoutMS != 2000 {
		t.Errorf("Invalid override should be ignored, got %d", cfg.Regex.TimeoutMS)
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestSaveLoad_TOML(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.Format.Indent = 0
	cfg.Format.CSVHeader = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path := filepath.Join(dir, "config.toml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected config file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.UI.Theme != "dark" || loaded.Format.Indent != 0 || loaded.Format.CSVHeader {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Expected light, got %s", cfg.UI.Theme)
	}
	if !cfg.UI.SidebarOpen || cfg.Format.Indent != 2 {
		t.Errorf("Expected defaults for missing keys, got %+v", cfg)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ncolour = \"red\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ui.colour") {
		t.Errorf("Expected unknown key error, got %v", err)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[format]\nindent = 40\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "format.indent") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestSaveLoad_JSON(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Log.Level = "debug"
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := Path()
	if err != nil || got != path {
		t.Errorf("Expected Path() to find the JSON file, got %s (%v)", got, err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Expected debug, got %s", loaded.Log.Level)
	}
}

func TestString(t *testing.T) {
	s := Default().String()
	if !strings.Contains(s, "[format]") || !strings.Contains(s, "indent = 2") {
		t.Errorf("Expected TOML rendering, got:\n%s", s)
	}
}
