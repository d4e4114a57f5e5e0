package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

// SourceKind names where a config file comes from
type SourceKind string

const (
	SourceUser     SourceKind = "user"     // ~/.config/dtsgen/dtsgen.toml
	SourceProject  SourceKind = "project"  // dtsgen.toml found walking up from the working directory
	SourceExplicit SourceKind = "explicit" // --config
)

// Source is a candidate config file
type Source struct {
	Kind   SourceKind `json:"kind" yaml:"kind"`
	Path   string     `json:"path" yaml:"path"`
	Exists bool       `json:"exists" yaml:"exists"`
}

// NewViper builds a Viper instance with defaults, config files and
// environment bindings. configFile replaces the project file search when set.
// Flags are bound by the caller on top of the returned instance.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", configFile),
				"check the --config path")
		}
	}

	if err := mergeConfigFiles(v, SearchPaths(configFile)); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadWithViper unmarshals and validates the configuration held by v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads the layered configuration without any flag overrides
func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadFromFile loads configuration from a single file on top of the defaults.
// Environment variables are not consulted.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// SearchPaths lists the config files consulted, lowest precedence first.
func SearchPaths(configFile string) []Source {
	var sources []Source
	if path := UserConfigPath(); path != "" {
		sources = append(sources, Source{Kind: SourceUser, Path: path})
	}

	if configFile != "" {
		sources = append(sources, Source{Kind: SourceExplicit, Path: configFile})
	} else if wd, err := os.Getwd(); err == nil {
		if path := findProjectConfig(wd); path != "" {
			sources = append(sources, Source{Kind: SourceProject, Path: path})
		}
	}

	for i := range sources {
		_, err := os.Stat(sources[i].Path)
		sources[i].Exists = err == nil
	}
	return sources
}

// UserConfigPath returns ~/.config/dtsgen/dtsgen.toml, or "" without a home directory
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dtsgen", ProjectConfigName)
}

// findProjectConfig searches for dtsgen.toml by walking up the directory tree
// from dir. Returns "" when none is found.
func findProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges existing files in order, later files overriding
// earlier ones. Merged values stay below env vars and flags.
func mergeConfigFiles(v *viper.Viper, sources []Source) error {
	for _, src := range sources {
		if !src.Exists {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(src.Path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "failed to read %s config %s", src.Kind, src.Path),
				"run 'dtsgen config validate' to locate the problem")
		}

		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge config %s", src.Path)
		}

		logger.Debugw("Merged config file",
			logger.FieldPath, src.Path,
			"source", string(src.Kind))
	}
	return nil
}
