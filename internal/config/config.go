// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/jeranaias/toolbench/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config holds user preferences. It never holds user content.
type Config struct {
	Version string `toml:"version" json:"version"`

	UI     UIConfig     `toml:"ui" json:"ui"`
	Format FormatConfig `toml:"format" json:"format"`
	Regex  RegexConfig  `toml:"regex" json:"regex"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// UIConfig contains shell settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// SidebarWidth is the sidebar width in columns
	SidebarWidth int  `toml:"sidebar_width" json:"sidebar_width"`
	SidebarOpen  bool `toml:"sidebar_open" json:"sidebar_open"`
}

// FormatConfig contains defaults for the conversion tools.
type FormatConfig struct {
	// Indent is the JSON/YAML indent; 0 means compact JSON
	Indent int `toml:"indent" json:"indent"`
	// CSVDelimiter is a single character, or `\t` for tab
	CSVDelimiter string `toml:"csv_delimiter" json:"csv_delimiter"`
	CSVHeader    bool   `toml:"csv_header" json:"csv_header"`
	// EpochUnit is "auto", "seconds" or "milliseconds"
	EpochUnit string `toml:"epoch_unit" json:"epoch_unit"`
}

// RegexConfig contains regex tester settings.
type RegexConfig struct {
	TimeoutMS int    `toml:"timeout_ms" json:"timeout_ms"`
	Flags     string `toml:"flags" json:"flags"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error"
	Level string `toml:"level" json:"level"`
}

// Bounds for numeric settings.
const (
	MinSidebarWidth = 16
	MaxSidebarWidth = 60
	MaxIndent       = 10
	MaxRegexTimeout = 60000
)

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		UI: UIConfig{
			Theme:        "auto",
			SidebarWidth: 24,
			SidebarOpen:  true,
		},
		Format: FormatConfig{
			Indent:       2,
			CSVDelimiter: ",",
			CSVHeader:    true,
			EpochUnit:    "auto",
		},
		Regex: RegexConfig{
			TimeoutMS: 2000,
			Flags:     "g",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns $TOOLBENCH_HOME, or ~/.toolbench when unset.
func ConfigDir() (string, error) {
	if dir := os.Getenv("TOOLBENCH_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".toolbench"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Path returns the file Load would read: the TOML file if it exists, else
// the JSON file if it exists, else the TOML path.
func Path() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file (TOML first, then JSON), applies environment
// overrides and validates. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads a specific file. Files ending in .json are read as
// JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// fillDefaults restores string settings left empty by the file.
func (c *Config) fillDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
	if c.Format.EpochUnit == "" {
		c.Format.EpochUnit = defaults.Format.EpochUnit
	}
	if c.Regex.TimeoutMS == 0 {
		c.Regex.TimeoutMS = defaults.Regex.TimeoutMS
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the file Load reads.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as JSON when path ends in .json, TOML otherwise.
// Files are written atomically with 0600 permissions.
func SaveTo(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to a TOML file with a short header.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# toolbench configuration file\n")
	buf.WriteString("# Preferences only; no user content is ever stored here.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes     = []string{"auto", "dark", "light"}
	validEpochUnits = []string{"auto", "seconds", "milliseconds"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !contains(validThemes, c.UI.Theme) {
		add("ui.theme", "must be one of %s, got %q", strings.Join(validThemes, ", "), c.UI.Theme)
	}
	if c.UI.SidebarWidth < MinSidebarWidth || c.UI.SidebarWidth > MaxSidebarWidth {
		add("ui.sidebar_width", "must be between %d and %d, got %d", MinSidebarWidth, MaxSidebarWidth, c.UI.SidebarWidth)
	}
	if c.Format.Indent < 0 || c.Format.Indent > MaxIndent {
		add("format.indent", "must be between 0 and %d, got %d", MaxIndent, c.Format.Indent)
	}
	if err := ValidateDelimiter(c.Format.CSVDelimiter); err != nil {
		add("format.csv_delimiter", "%v", err)
	}
	if !contains(validEpochUnits, c.Format.EpochUnit) {
		add("format.epoch_unit", "must be one of %s, got %q", strings.Join(validEpochUnits, ", "), c.Format.EpochUnit)
	}
	if c.Regex.TimeoutMS < 1 || c.Regex.TimeoutMS > MaxRegexTimeout {
		add("regex.timeout_ms", "must be between 1 and %d, got %d", MaxRegexTimeout, c.Regex.TimeoutMS)
	}
	for _, r := range c.Regex.Flags {
		if !strings.ContainsRune("gims", r) {
			add("regex.flags", "unsupported flag %q", r)
			break
		}
	}
	if !contains(validLogLevels, c.Log.Level) {
		add("log.level", "must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Log.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateDelimiter accepts "", a single character other than quote, CR
// and LF, or the two-character escape `\t`.
func ValidateDelimiter(d string) error {
	if d == "" || d == `\t` {
		return nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("must be a single character, got %q", d)
	}
	if d == `"` || d == "\r" || d == "\n" {
		return fmt.Errorf("cannot be %q", d)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides maps environment variables to config keys.
var envOverrides = []struct {
	env string
	key string
}{
	{"TOOLBENCH_THEME", "ui.theme"},
	{"TOOLBENCH_INDENT", "format.indent"},
	{"TOOLBENCH_CSV_DELIMITER", "format.csv_delimiter"},
	{"TOOLBENCH_REGEX_TIMEOUT_MS", "regex.timeout_ms"},
	{"TOOLBENCH_LOG_LEVEL", "log.level"},
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TOOLBENCH_THEME: overrides ui.theme
//   - TOOLBENCH_INDENT: overrides format.indent
//   - TOOLBENCH_CSV_DELIMITER: overrides format.csv_delimiter
//   - TOOLBENCH_REGEX_TIMEOUT_MS: overrides regex.timeout_ms
//   - TOOLBENCH_LOG_LEVEL: overrides log.level
//
// Values that cannot be converted to the field's type are ignored.
func (c *Config) ApplyEnvOverrides() {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			_ = c.Set(o.key, v)
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// ErrUnknownKey is returned for keys that name no setting.
var ErrUnknownKey = errors.New("unknown config key")

// Get returns the value at a dot-notation key such as "format.indent".
func (c *Config) Get(key string) (any, error) {
	section, field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return section.Interface(), nil
	}
	f, ok := fieldByTag(section, field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.Interface(), nil
}

// Set assigns a value at a dot-notation key. Strings are converted to the
// field's type ("4" to an int, "false" to a bool). The result is not
// validated; call Validate before saving.
func (c *Config) Set(key string, value any) error {
	section, field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if field == "" {
		return fmt.Errorf("%s is a section; set one of its keys", key)
	}
	if _, ok := fieldByTag(section, field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           section.Addr().Interface(),
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any{field: value}); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// lookup resolves the section of key. A top-level scalar like "version"
// resolves to the Config itself with field set.
func (c *Config) lookup(key string) (reflect.Value, string, error) {
	parts := strings.Split(strings.TrimSpace(key), ".")
	root := reflect.ValueOf(c).Elem()

	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return reflect.Value{}, "", errors.New("empty key")
		}
		f, ok := fieldByTag(root, parts[0])
		if !ok {
			return reflect.Value{}, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if f.Kind() == reflect.Struct {
			return f, "", nil
		}
		return root, parts[0], nil
	case 2:
		section, ok := fieldByTag(root, parts[0])
		if !ok || section.Kind() != reflect.Struct {
			return reflect.Value{}, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		return section, parts[1], nil
	}
	return reflect.Value{}, "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	return tag
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Keys returns every settable key in dot notation, sorted.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Struct {
			keys = append(keys, tomlName(f))
			continue
		}
		for j := 0; j < f.Type.NumField(); j++ {
			keys = append(keys, tomlName(f)+"."+tomlName(f.Type.Field(j)))
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err.Error()
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. A config that fails to load is replaced by defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil || cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
