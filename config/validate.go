package config

import (
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/errors"
)

var namespacePattern = regexp.MustCompile(`^[$A-Za-z_][$\w]*(\.[$A-Za-z_][$\w]*)*$`)

// Validate checks that every enumerated value is in its allowed set
func (c *Config) Validate() error {
	if !namespacePattern.MatchString(c.Namespace.Default) {
		return errors.NewInvalidConfigError("namespace.default must be a dotted identifier, got %q", c.Namespace.Default)
	}

	if !declgen.FallbackMode(c.Types.Fallback).Valid() {
		return errors.NewInvalidConfigError("types.fallback must be %q or %q, got %q",
			declgen.FallbackPermissive, declgen.FallbackConservative, c.Types.Fallback)
	}

	if !declgen.FileNaming(c.Output.FileNaming).Valid() {
		return errors.NewInvalidConfigError("output.file_naming must be %q or %q, got %q",
			declgen.NamingBare, declgen.NamingQualified, c.Output.FileNaming)
	}

	if c.Output.NewLine != NewLineLF && c.Output.NewLine != NewLineCRLF {
		return errors.NewInvalidConfigError("output.newline must be %q or %q, got %q",
			NewLineLF, NewLineCRLF, c.Output.NewLine)
	}

	// Empty constraint = no version check
	if c.Project.VersionConstraint != "" {
		if _, err := semver.NewConstraint(c.Project.VersionConstraint); err != nil {
			return errors.NewInvalidConfigError("project.version_constraint %q: %s", c.Project.VersionConstraint, err)
		}
	}

	// 0 would mean no timeout at all
	if c.Input.TimeoutSeconds <= 0 {
		return errors.NewInvalidConfigError("input.timeout_seconds must be > 0, got %d", c.Input.TimeoutSeconds)
	}

	if c.Log.Theme != "everforest" && c.Log.Theme != "gruvbox" {
		return errors.NewInvalidConfigError("log.theme must be \"everforest\" or \"gruvbox\", got %q", c.Log.Theme)
	}

	return nil
}

// ValidateFile decodes a single TOML file strictly: keys dtsgen does not know
// are reported, then the values are validated on top of the defaults.
func ValidateFile(path string) (*Config, error) {
	config := Defaults()
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to parse %s", path),
			"the config file must be valid TOML")
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("unknown keys in %s: %s", path, strings.Join(keys, ", ")),
			"run 'dtsgen config show' to list the supported keys")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid value in %s", path)
	}
	return config, nil
}
