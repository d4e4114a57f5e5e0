// Package config loads dtsgen settings from defaults, TOML files, DTSGEN_*
// environment variables and command-line flags.
package config

import (
	"time"

	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/internal/httpclient"
)

// Config represents the dtsgen configuration
type Config struct {
	Namespace NamespaceConfig `mapstructure:"namespace" toml:"namespace" json:"namespace" yaml:"namespace"`
	Types     TypesConfig     `mapstructure:"types" toml:"types" json:"types" yaml:"types"`
	Generate  GenerateConfig  `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Project   ProjectConfig   `mapstructure:"project" toml:"project" json:"project" yaml:"project"`
	Input     InputConfig     `mapstructure:"input" toml:"input" json:"input" yaml:"input"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// NamespaceConfig configures where classes without a qualifier are placed
type NamespaceConfig struct {
	Default string `mapstructure:"default" toml:"default" json:"default" yaml:"default"`
}

// TypesConfig configures the type-expression translation
type TypesConfig struct {
	Fallback string `mapstructure:"fallback" toml:"fallback" json:"fallback" yaml:"fallback"` // permissive | conservative
}

// GenerateConfig configures which members are emitted
type GenerateConfig struct {
	IncludePrivate bool `mapstructure:"include_private" toml:"include_private" json:"include_private" yaml:"include_private"`
}

// OutputConfig configures the written files
type OutputConfig struct {
	FileNaming     string `mapstructure:"file_naming" toml:"file_naming" json:"file_naming" yaml:"file_naming"` // bare | qualified
	NewLine        string `mapstructure:"newline" toml:"newline" json:"newline" yaml:"newline"`                 // lf | crlf
	RemoveComments bool   `mapstructure:"remove_comments" toml:"remove_comments" json:"remove_comments" yaml:"remove_comments"`
	Index          bool   `mapstructure:"index" toml:"index" json:"index" yaml:"index"`
}

// ProjectConfig constrains the documented project
type ProjectConfig struct {
	// VersionConstraint is a semver range the document's project.version must satisfy. Empty disables the check.
	VersionConstraint string `mapstructure:"version_constraint" toml:"version_constraint" json:"version_constraint" yaml:"version_constraint"`
}

// InputConfig configures downloads of http(s) inputs
type InputConfig struct {
	TimeoutSeconds    int  `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
	AllowPrivateHosts bool `mapstructure:"allow_private_hosts" toml:"allow_private_hosts" json:"allow_private_hosts" yaml:"allow_private_hosts"` // localhost, 10/8, ...
}

// LogConfig configures log output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // everforest | gruvbox
}

// Line ending names accepted by output.newline
const (
	NewLineLF   = "lf"
	NewLineCRLF = "crlf"
)

// ToOptions converts the configuration into generator options.
func (c *Config) ToOptions() declgen.Options {
	opts := declgen.DefaultOptions()
	opts.DefaultNamespace = c.Namespace.Default
	opts.Fallback = declgen.FallbackMode(c.Types.Fallback)
	opts.IncludePrivate = c.Generate.IncludePrivate
	opts.FileNaming = declgen.FileNaming(c.Output.FileNaming)
	opts.Printer = dts.PrinterOptions{
		NewLine:        newLineKind(c.Output.NewLine),
		RemoveComments: c.Output.RemoveComments,
	}
	opts.Index = c.Output.Index
	opts.VersionConstraint = c.Project.VersionConstraint
	return opts
}

// ClientOptions returns the HTTP client settings for remote inputs.
func (c *Config) ClientOptions() httpclient.Options {
	return httpclient.Options{
		Timeout:      time.Duration(c.Input.TimeoutSeconds) * time.Second,
		AllowPrivate: c.Input.AllowPrivateHosts,
	}
}

func newLineKind(name string) dts.NewLineKind {
	if name == NewLineCRLF {
		return dts.CarriageReturnLineFeed
	}
	return dts.LineFeed
}
