// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigrun-term/internal/util"
)

// ErrInvalidConfig wraps every validation failure returned by the loaders.
var ErrInvalidConfig = errors.New("invalid config")

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigrun-term configuration.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Storage  StorageConfig  `toml:"storage"`
	Commands CommandsConfig `toml:"commands"`
	Backend  BackendConfig  `toml:"backend"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Prompt is drawn before the first input line
	Prompt string `toml:"prompt"`
	// ShellPrompt replaces Prompt in shell mode
	ShellPrompt string `toml:"shell_prompt"`
	// MaskGlyph replaces every character of secret input (one narrow character)
	MaskGlyph string `toml:"mask_glyph"`
	// Spinner is the loading animation: "dot", "line", "minidot", "points"
	Spinner string `toml:"spinner"`
	// ScrollRemap is "scale" or "anchor"
	ScrollRemap string `toml:"scroll_remap"`
	// DropdownMax caps the rows of the helper dropdown
	DropdownMax int `toml:"dropdown_max"`
	// LogFile receives debug logs; empty disables logging
	LogFile string `toml:"log_file"`
	// Mouse enables mouse wheel scrolling and drag selection
	Mouse bool `toml:"mouse"`
	// AltScreen runs the UI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen"`
}

// StorageConfig contains session persistence settings.
type StorageConfig struct {
	// Enabled turns session persistence on
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database file
	Path string `toml:"path"`
}

// CommandsConfig contains slash command settings.
type CommandsConfig struct {
	// Dropdown shows matching commands while typing "/"
	Dropdown bool `toml:"dropdown"`
	// Helpers are the commands offered in the dropdown
	Helpers []string `toml:"helpers"`
}

// BackendConfig contains settings of the built-in demo backend.
type BackendConfig struct {
	// ReplyDelayMS is how long the backend "thinks" before answering
	ReplyDelayMS int `toml:"reply_delay_ms"`
}

// Valid option sets.
var (
	validSpinners    = []string{"dot", "line", "minidot", "points"}
	validScrollRemap = []string{"scale", "anchor"}
)

// DefaultHelpers are the built-in slash commands.
var DefaultHelpers = []string{"/sessions", "/new", "/shell", "/clear", "/help"}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	dbPath := ""
	if dir, err := ConfigDir(); err == nil {
		dbPath = filepath.Join(dir, "sessions.db")
	}

	return &Config{
		UI: UIConfig{
			Prompt:      "> ",
			ShellPrompt: " $ ",
			MaskGlyph:   "*",
			Spinner:     "minidot",
			ScrollRemap: "scale",
			DropdownMax: 8,
			Mouse:       true,
			AltScreen:   true,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    dbPath,
		},
		Commands: CommandsConfig{
			Dropdown: true,
			Helpers:  append([]string(nil), DefaultHelpers...),
		},
		Backend: BackendConfig{
			ReplyDelayMS: 600,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rigrun-term configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigrun-term"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file, falling back to defaults when it does
// not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file. A missing file
// yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return nil
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# rigrun-term configuration file\n")
	buf.WriteString("# Changes are picked up while the UI is running.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if util.StringWidth(c.UI.Prompt) > 8 {
		errs = append(errs, ValidationError{Field: "ui.prompt", Message: "must be at most 8 cells wide"})
	}
	if util.StringWidth(c.UI.ShellPrompt) > 8 {
		errs = append(errs, ValidationError{Field: "ui.shell_prompt", Message: "must be at most 8 cells wide"})
	}

	if utf8.RuneCountInString(c.UI.MaskGlyph) != 1 || util.StringWidth(c.UI.MaskGlyph) != 1 {
		errs = append(errs, ValidationError{
			Field:   "ui.mask_glyph",
			Message: fmt.Sprintf("'%s' must be a single narrow character", c.UI.MaskGlyph),
		})
	}

	if !contains(validSpinners, c.UI.Spinner) {
		errs = append(errs, ValidationError{
			Field:   "ui.spinner",
			Message: fmt.Sprintf("invalid spinner '%s', must be one of: %s", c.UI.Spinner, strings.Join(validSpinners, ", ")),
		})
	}

	if !contains(validScrollRemap, c.UI.ScrollRemap) {
		errs = append(errs, ValidationError{
			Field:   "ui.scroll_remap",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: %s", c.UI.ScrollRemap, strings.Join(validScrollRemap, ", ")),
		})
	}

	if c.UI.DropdownMax < 1 || c.UI.DropdownMax > 50 {
		errs = append(errs, ValidationError{Field: "ui.dropdown_max", Message: "must be between 1 and 50"})
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		errs = append(errs, ValidationError{Field: "storage.path", Message: "required when storage is enabled"})
	}

	for i, helper := range c.Commands.Helpers {
		if !strings.HasPrefix(helper, "/") || strings.ContainsAny(helper, " \t\n") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("commands.helpers[%d]", i),
				Message: fmt.Sprintf("'%s' must start with / and contain no spaces", helper),
			})
		}
	}

	if c.Backend.ReplyDelayMS < 0 || c.Backend.ReplyDelayMS > 60000 {
		errs = append(errs, ValidationError{Field: "backend.reply_delay_ms", Message: "must be between 0 and 60000"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// SetDefaults fills empty fields with their default values. Booleans are
// left alone since false is a valid choice.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.UI.Prompt == "" {
		c.UI.Prompt = defaults.UI.Prompt
	}
	if c.UI.ShellPrompt == "" {
		c.UI.ShellPrompt = defaults.UI.ShellPrompt
	}
	if c.UI.MaskGlyph == "" {
		c.UI.MaskGlyph = defaults.UI.MaskGlyph
	}
	if c.UI.Spinner == "" {
		c.UI.Spinner = defaults.UI.Spinner
	}
	if c.UI.ScrollRemap == "" {
		c.UI.ScrollRemap = defaults.UI.ScrollRemap
	}
	c.UI.ScrollRemap = strings.ToLower(c.UI.ScrollRemap)
	if c.UI.DropdownMax == 0 {
		c.UI.DropdownMax = defaults.UI.DropdownMax
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaults.Storage.Path
	}
	if c.Commands.Helpers == nil {
		c.Commands.Helpers = defaults.Commands.Helpers
	}
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - RIGRUN_TERM_PROMPT: overrides ui.prompt
//   - RIGRUN_TERM_SCROLL_REMAP: overrides ui.scroll_remap
//   - RIGRUN_TERM_SPINNER: overrides ui.spinner
//   - RIGRUN_TERM_DB: overrides storage.path
//   - RIGRUN_TERM_NO_STORAGE: disables storage when "1" or "true"
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("RIGRUN_TERM_PROMPT"); prompt != "" {
		c.UI.Prompt = prompt
	}
	if remap := os.Getenv("RIGRUN_TERM_SCROLL_REMAP"); remap != "" {
		c.UI.ScrollRemap = remap
	}
	if spinner := os.Getenv("RIGRUN_TERM_SPINNER"); spinner != "" {
		c.UI.Spinner = spinner
	}
	if db := os.Getenv("RIGRUN_TERM_DB"); db != "" {
		c.Storage.Path = db
	}
	if off := os.Getenv("RIGRUN_TERM_NO_STORAGE"); off != "" {
		if disabled, err := strconv.ParseBool(off); err == nil && disabled {
			c.Storage.Enabled = false
		}
	}
}

// MaskRune returns the mask glyph as a rune.
func (c *Config) MaskRune() rune {
	r, _ := utf8.DecodeRuneInString(c.UI.MaskGlyph)
	return r
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Commands.Helpers = append([]string(nil), c.Commands.Helpers...)
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
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

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// EnsureConfigDir creates the configuration directory if it is missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}
