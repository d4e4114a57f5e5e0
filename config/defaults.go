package config

import (
	"github.com/spf13/viper"
	"github.com/teranos/dtsgen/declgen"
)

const (
	// EnvPrefix prefixes environment overrides: DTSGEN_OUTPUT_INDEX=true
	EnvPrefix = "DTSGEN"

	// ProjectConfigName is searched for from the working directory upwards
	ProjectConfigName = "dtsgen.toml"

	// DefaultTheme is the console log color scheme
	DefaultTheme = "everforest"

	// DefaultTimeoutSeconds bounds the download of an http(s) input
	DefaultTimeoutSeconds = 30

	// DefaultFilePermissions for files written by config init
	DefaultFilePermissions = 0644

	// DefaultDirPermissions for directories created by config init
	DefaultDirPermissions = 0755
)

// Defaults returns the configuration used when no source sets a value.
func Defaults() *Config {
	return &Config{
		Namespace: NamespaceConfig{Default: declgen.DefaultNamespace},
		Types:     TypesConfig{Fallback: string(declgen.FallbackPermissive)},
		Output: OutputConfig{
			FileNaming: string(declgen.NamingBare),
			NewLine:    NewLineLF,
		},
		Input: InputConfig{TimeoutSeconds: DefaultTimeoutSeconds},
		Log:   LogConfig{Theme: DefaultTheme},
	}
}

// SetDefaults configures default values for all configuration options.
// Every key needs a default so environment overrides are picked up on Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("namespace.default", d.Namespace.Default)

	v.SetDefault("types.fallback", d.Types.Fallback)

	v.SetDefault("generate.include_private", d.Generate.IncludePrivate)

	v.SetDefault("output.file_naming", d.Output.FileNaming)
	v.SetDefault("output.newline", d.Output.NewLine)
	v.SetDefault("output.remove_comments", d.Output.RemoveComments)
	v.SetDefault("output.index", d.Output.Index)

	v.SetDefault("project.version_constraint", d.Project.VersionConstraint)

	v.SetDefault("input.timeout_seconds", d.Input.TimeoutSeconds)
	v.SetDefault("input.allow_private_hosts", d.Input.AllowPrivateHosts)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.theme", d.Log.Theme)
}
