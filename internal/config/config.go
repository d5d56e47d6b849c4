// Package config provides configuration management for docsite using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/docsite/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version   int       `mapstructure:"version" yaml:"version"`
	SiteFile  string    `mapstructure:"site_file" yaml:"site_file"`
	Format    string    `mapstructure:"format" yaml:"format"`
	LinkCheck LinkCheck `mapstructure:"link_check" yaml:"link_check"`
}

// LinkCheck controls dead-link detection.
type LinkCheck struct {
	// Enabled turns link checking on. Structural validation always runs.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Anchors enables "#fragment" checks against document headings.
	Anchors bool `mapstructure:"anchors" yaml:"anchors"`
	// Ignore lists glob patterns for links that are never checked.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// Init resets Viper and registers defaults, search paths, and environment
// bindings. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// DOCSITE_LINK_CHECK_ENABLED=false maps to link_check.enabled
	viper.SetEnvPrefix("DOCSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("site_file", paths.DefaultSiteFile)
	viper.SetDefault("format", "text")
	viper.SetDefault("link_check.enabled", true)
	viper.SetDefault("link_check.anchors", true)
	viper.SetDefault("link_check.ignore", []string{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load with no file: defaults apply
		case errors.As(err, &notFound):
			return nil, fmt.Errorf("config file not found at %s: %w", path, err)
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:  1,
		SiteFile: paths.DefaultSiteFile,
		Format:   "text",
		LinkCheck: LinkCheck{
			Enabled: true,
			Anchors: true,
		},
	}
}
