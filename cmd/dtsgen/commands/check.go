package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/errors"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <input> <outdir>",
		Short: "Check that generated declarations are up to date",
		Long: `Render every class in memory and compare the result with the files in
outdir without writing anything. Exits with status 1 when a file is missing,
differs, or a .d.ts file would no longer be generated.

Examples:
  dtsgen check ember.js/docs/data.json types
  dtsgen check data.json types --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(cmd.OutOrStdout(), `Usage: dtsgen check "ember.js/docs/data.json" outdir`)
				return errors.ErrUsage
			}

			doc, err := opts.openInput(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			result, err := declgen.NewGenerator(opts.cfg.ToOptions()).Check(doc, args[1])
			if err != nil {
				return err
			}
			opts.reporter(cmd).Checked(result)

			if !result.UpToDate {
				return errors.WithHint(errors.ErrOutOfDate,
					fmt.Sprintf("run 'dtsgen %s %s' to regenerate", args[0], args[1]))
			}
			return nil
		},
	}
}
