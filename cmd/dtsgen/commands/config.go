package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/display"
	"github.com/teranos/dtsgen/errors"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dtsgen configuration",
		Long: `Display and manage dtsgen configuration settings.

Examples:
  dtsgen config show                    # Show effective configuration
  dtsgen config show --format json      # Show configuration in JSON format
  dtsgen config get types.fallback      # Get a specific value
  dtsgen config validate                # Validate config files strictly
  dtsgen config where                   # List the files consulted
  dtsgen config init                    # Write ./dtsgen.toml with defaults`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the configuration merged from all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(opts.cfg, format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format != config.FormatJSON {
				fmt.Fprintln(out, "# dtsgen configuration")
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
	showCmd.Flags().StringVar(&format, "format", config.FormatTOML, "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., types.fallback, output.index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !opts.viper.IsSet(key) {
				return errors.WithHint(
					errors.Newf("configuration key %q not found", key),
					"run 'dtsgen config show' to list the supported keys")
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.viper.Get(key))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration",
		Long:        "Decode every config file strictly, reporting unknown keys, and validate the merged result",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, src := range config.SearchPaths(opts.configFile) {
				if !src.Exists {
					continue
				}
				if _, err := config.ValidateFile(src.Path); err != nil {
					return errors.Wrap(err, "configuration validation failed")
				}
			}
			if opts.configErr != nil {
				return errors.Wrap(opts.configErr, "configuration validation failed")
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
			return nil
		},
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and which files were checked.

Lists all configuration files in order of precedence, showing
which files exist and which are missing.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := config.SearchPaths(opts.configFile)
			out := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(out, sources)
			}

			fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
			fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
			for i, src := range sources {
				status := pterm.Gray("(not found)")
				if src.Exists {
					status = pterm.Green("✓")
				}
				fmt.Fprintf(out, "  %d. [%s]  %s %s\n", i+2, src.Kind, src.Path, status)
			}
			fmt.Fprintf(out, "  %d. [ENV]      %s_* environment variables\n", len(sources)+2, config.EnvPrefix)
			fmt.Fprintf(out, "  %d. [FLAGS]    Command line flags\n", len(sources)+3)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a config file with the default values",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd, initCmd)
	return configCmd
}
