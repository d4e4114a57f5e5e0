// Package commands implements the dtsgen command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/display"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/internal/httpclient"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/yuidoc"
)

// usageLine is printed to stdout when the positional arguments are missing
const usageLine = `Usage: dtsgen "ember.js/docs/data.json" outdir`

// annotationLenientConfig marks commands that still run when the
// configuration fails validation, so they can report on it.
const annotationLenientConfig = "lenient-config"

// rootOptions holds flag values and the resolved configuration of one invocation
type rootOptions struct {
	configFile string
	verbosity  int
	jsonOutput bool
	watch      bool

	viper     *viper.Viper
	cfg       *config.Config
	configErr error
}

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dtsgen <input> <outdir>",
		Short: "Generate TypeScript declaration files from YUIDoc data.json",
		Long: `dtsgen - TypeScript declarations from YUIDoc documentation.

Reads the data.json written by YUIDoc (or the same document as YAML) and
writes one <Class>.d.ts file per documented class into outdir. Each file
declares an ambient namespace holding the class with its methods, events
and properties.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (DTSGEN_* prefix)
3. --config file, or ./dtsgen.toml (searches up directories)
4. User config (~/.config/dtsgen/dtsgen.toml)
5. Default values

Examples:
  dtsgen ember.js/docs/data.json types          # Generate declarations
  dtsgen data.json types --index                # Also write index.d.ts
  dtsgen data.json types --watch                # Regenerate on every change
  dtsgen check data.json types                  # Fail when types/ is out of date
  dtsgen config show --format yaml              # Show effective configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (default: dtsgen.toml found from the working directory up)")
	pf.CountVarP(&opts.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	pf.Bool("json-logs", false, "Write logs as JSON")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	pf.String("namespace", "", "Namespace for classes without a qualifier (default \"Ember\")")
	pf.String("fallback", "", "Unknown type names: permissive or conservative (default \"permissive\")")
	pf.Bool("include-private", false, "Emit members documented @private")
	pf.Bool("index", false, "Also write index.d.ts referencing every generated file")

	root.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate whenever the input changes")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// flagBindings maps config keys to persistent flags
var flagBindings = map[string]string{
	"namespace.default":        "namespace",
	"types.fallback":           "fallback",
	"generate.include_private": "include-private",
	"output.index":             "index",
	"log.json":                 "json-logs",
}

// setup resolves the layered configuration and initializes the logger
func (o *rootOptions) setup(cmd *cobra.Command) error {
	lenient := cmd.Annotations[annotationLenientConfig] != ""

	v, err := config.NewViper(o.configFile)
	if err != nil {
		if !lenient {
			return err
		}
		o.configErr = err
		v = viper.New()
		config.SetDefaults(v)
	}
	for key, flag := range flagBindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", flag)
		}
	}
	o.viper = v

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		if !lenient {
			return err
		}
		// Log with defaults; the command reports the problem itself
		if o.configErr == nil {
			o.configErr = err
		}
		cfg = config.Defaults()
	}
	o.cfg = cfg

	logger.SetTheme(cfg.Log.Theme)
	if err := logger.Initialize(cfg.Log.JSON, o.verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Configuration resolved",
		"verbosity", logger.LevelName(o.verbosity),
		logger.FieldNamespace, cfg.Namespace.Default,
		"fallback", cfg.Types.Fallback)
	return nil
}

// reporter returns the result reporter for cmd
func (o *rootOptions) reporter(cmd *cobra.Command) display.Reporter {
	return display.NewReporter(cmd.OutOrStdout(), o.jsonOutput, o.verbosity)
}

// openInput reads the YUIDoc document from a local path or an http(s) URL
func (o *rootOptions) openInput(ctx context.Context, input string) (*yuidoc.Document, error) {
	return yuidoc.Open(ctx, input, httpclient.New(o.cfg.ClientOptions()))
}

// Execute runs the command line and returns the process exit status
func Execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	// The usage line is already on stdout
	if errors.IsUsageError(err) {
		return 1
	}
	printError(stderr, err)
	return 1
}

// printError writes err and its hints
func printError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.LightCyan("hint:"), hint))
	}
}
