// Package config provides Viper-based configuration loading for the modkit tool.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// WorkspaceConfig holds defaults for where mods live and how they are laid out.
type WorkspaceConfig struct {
	// ModsDir is the parent directory new mods are created in.
	ModsDir string `mapstructure:"mods_dir"`
	// ModInfoFilename is the info file name given to new mods.
	ModInfoFilename string `mapstructure:"modinfo_filename"`
	// ItemExtensions lists the file extensions read as item descriptors,
	// each including the leading dot.
	ItemExtensions []string `mapstructure:"item_extensions"`
}

// CatalogConfig holds catalog export settings.
type CatalogConfig struct {
	// OutputDir is where catalog YAML files are written.
	OutputDir string `mapstructure:"output_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWorkspace(c.Workspace); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(c.Catalog.OutputDir) == "" {
		errs = append(errs, "catalog.output_dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateWorkspace(w WorkspaceConfig) error {
	var errs []string
	if strings.TrimSpace(w.ModsDir) == "" {
		errs = append(errs, "workspace.mods_dir must not be empty")
	}
	if strings.TrimSpace(w.ModInfoFilename) == "" {
		errs = append(errs, "workspace.modinfo_filename must not be empty")
	}
	if strings.ContainsAny(w.ModInfoFilename, `/\`) {
		errs = append(errs, fmt.Sprintf("workspace.modinfo_filename must be a bare file name, got %q", w.ModInfoFilename))
	}
	if len(w.ItemExtensions) == 0 {
		errs = append(errs, "workspace.item_extensions must not be empty")
	}
	for _, ext := range w.ItemExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("workspace.item_extensions entries must start with '.', got %q", ext))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the default configuration with environment variable
// overrides applied, for runs without a configuration file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with MODKIT_ prefix
	v.SetEnvPrefix("MODKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("workspace.mods_dir", "mods")
	v.SetDefault("workspace.modinfo_filename", "pak.modinfo")
	v.SetDefault("workspace.item_extensions", []string{".item"})

	v.SetDefault("catalog.output_dir", "catalog")
}
