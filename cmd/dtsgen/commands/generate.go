package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/teranos/dtsgen/declgen"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/internal/httpclient"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/watch"
)

func runGenerate(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(cmd.OutOrStdout(), usageLine)
		return errors.ErrUsage
	}
	input, outdir := args[0], args[1]

	if opts.watch && httpclient.IsRemote(input) {
		return errors.WithHint(errors.Newf("cannot watch %s", input), "--watch needs a local file; download the document first")
	}

	gen := declgen.NewGenerator(opts.cfg.ToOptions())
	rep := opts.reporter(cmd)

	generate := func(ctx context.Context) error {
		doc, err := opts.openInput(ctx, input)
		if err != nil {
			return err
		}
		report, err := gen.Generate(doc, outdir)
		if err != nil {
			return err
		}
		rep.Generated(report)
		return nil
	}

	if !opts.watch {
		return generate(cmd.Context())
	}

	// In watch mode a bad document is reported and the next save retries
	if err := generate(cmd.Context()); err != nil {
		rep.Error("generate", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(input, watch.DefaultDebounce, func(ctx context.Context) error {
		if err := generate(ctx); err != nil {
			rep.Error("generate", err)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	rep.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", input))
	logger.Debugw("Watch mode started", logger.FieldPath, input)
	return w.Run(ctx)
}
