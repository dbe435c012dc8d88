package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/lint"
	"github.com/alexisbeaulieu97/architect/internal/watch"
)

type watchOptions struct {
	files    sourceFlags
	output   string
	theme    string
	debounce time.Duration
	lint     bool
}

func newWatchCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch --output <file> [--ts file] [--html file] [--scss file]",
		Short: "Re-render a preview page whenever the section files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, rootFlags, opts)
		},
	}

	opts.files.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Preview page to keep up to date")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Preview theme: dark or light (default from settings)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "Wait this long for writes to settle (default from settings)")
	cmd.Flags().BoolVar(&opts.lint, "lint", false, "Lint after every render")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, rootFlags *rootFlags, opts *watchOptions) error {
	app, err := loadApp(cmd, rootFlags, "watch")
	if err != nil {
		return err
	}
	if !opts.files.set() {
		return newCommandError("watch", "choosing files", fmt.Errorf("no section files given"), "Pass at least one of --ts, --html or --scss.")
	}

	theme, err := app.theme(opts.theme)
	if err != nil {
		return newCommandError("watch", "selecting theme", err, "Use --theme dark or --theme light.")
	}

	debounce := opts.debounce
	if debounce <= 0 {
		debounce = app.settings.Debounce
	}

	builder := app.builder(false)
	render := func() error {
		c, err := opts.files.read()
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, opts.output, builder.Render(c, theme)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s rendered %s\n", time.Now().Format(time.TimeOnly), opts.output)
		if opts.lint {
			renderLintReport(cmd, app, c, lint.Check(c, app.tokens))
		}
		return nil
	}

	if err := render(); err != nil {
		return newCommandError("watch", "rendering initial preview", err, "Check the section file paths.")
	}

	watcher, err := watch.New(opts.files.paths(), watch.Options{Debounce: debounce, Logger: app.log})
	if err != nil {
		return newCommandError("watch", "starting file watcher", err, "Check that the section files' directories exist.")
	}

	app.log.WithFields(map[string]any{"files": watcher.Files(), "debounce": debounce.String()}).Info("watching for changes")
	return watcher.Run(ctx, func(changed []string) error {
		app.log.WithField("changed", changed).Debug("re-rendering")
		return render()
	})
}
