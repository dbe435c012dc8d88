package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/document"
)

type renderOptions struct {
	files    sourceFlags
	theme    string
	sanitize bool
	output   string
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [ref]",
		Short: "Render a component into a standalone preview page",
		Long: `Render writes the preview document of a history entry (the latest when no
reference is given) or of the section files passed with --ts, --html and --scss.
A reference is a full ID, a unique ID prefix, a slug or @N for the Nth newest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootFlags, opts, args)
		},
	}

	opts.files.register(cmd)
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Preview theme: dark or light (default from settings)")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Strip scripts and event handlers from the markup")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the page to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags, "render")
	if err != nil {
		return err
	}

	theme, err := app.theme(opts.theme)
	if err != nil {
		return newCommandError("render", "selecting theme", err, "Use --theme dark or --theme light.")
	}

	c, err := app.component("render", args, &opts.files)
	if err != nil {
		return err
	}

	page := app.builder(opts.sanitize).Render(c, theme)
	if err := writeOutput(cmd, opts.output, page); err != nil {
		return newCommandError("render", "writing preview", err, "Check the --output path.")
	}

	app.log.WithFields(map[string]any{"slug": c.Slug, "theme": theme.Name, "bytes": len(page)}).Debug("preview rendered")
	return nil
}

type inspectOptions struct {
	files  sourceFlags
	theme  string
	output string
}

func newInspectCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [ref]",
		Short: "Render the raw sections of a component with syntax highlighting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "inspect")
			if err != nil {
				return err
			}
			theme, err := app.theme(opts.theme)
			if err != nil {
				return newCommandError("inspect", "selecting theme", err, "Use --theme dark or --theme light.")
			}
			c, err := app.component("inspect", args, &opts.files)
			if err != nil {
				return err
			}

			page, err := document.NewInspector().Render(c, theme)
			if err != nil {
				return newCommandError("inspect", "highlighting sources", err, "")
			}
			if err := writeOutput(cmd, opts.output, page); err != nil {
				return newCommandError("inspect", "writing page", err, "Check the --output path.")
			}
			return nil
		},
	}

	opts.files.register(cmd)
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Page theme: dark or light (default from settings)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the page to a file instead of stdout")

	return cmd
}
