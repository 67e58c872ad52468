package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config drives one organize run. Flags override config-file values; the
// config file itself is optional.
type Config struct {
	Source         string            `mapstructure:"source"`
	Destination    string            `mapstructure:"destination"`
	Action         Action            `mapstructure:"action"`
	Template       string            `mapstructure:"template"`
	DryRun         bool              `mapstructure:"dry_run"`
	Recursive      bool              `mapstructure:"recursive"`
	FollowSymlinks bool              `mapstructure:"follow_symlinks"`
	IncludeExt     []string          `mapstructure:"include_extensions"`
	ExcludeExt     []string          `mapstructure:"exclude_extensions"`
	Extra          map[string]string `mapstructure:"extra"`
	UseExifTool    bool              `mapstructure:"use_exiftool"`
	Verbose        bool              `mapstructure:"verbose"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("mediasort")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "mediasort"))

	viper.SetDefault("action", string(ActionMove))
	viper.SetDefault("template", "default")
	viper.SetDefault("recursive", true)
	viper.SetDefault("follow_symlinks", false)
	viper.SetDefault("use_exiftool", false)

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Extra == nil {
		cfg.Extra = map[string]string{}
	}

	return &cfg, nil
}

// ResolveTemplate maps the configured template through the built-in table and
// the loaded profiles; anything unrecognized is treated as a literal template
// string.
func (c *Config) ResolveTemplate(profiles map[string]TemplateProfile) string {
	if t, ok := DefaultTemplates[c.Template]; ok {
		return t
	}
	if p, ok := profiles[c.Template]; ok {
		return p.Template
	}
	return c.Template
}

// NormalizedIncludeExt returns the include set lowercased with leading dots.
func (c *Config) NormalizedIncludeExt() map[string]bool {
	return normalizeExtensions(c.IncludeExt)
}

// NormalizedExcludeExt returns the exclude set lowercased with leading dots.
func (c *Config) NormalizedExcludeExt() map[string]bool {
	return normalizeExtensions(c.ExcludeExt)
}
