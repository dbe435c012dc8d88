package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/config"
	"github.com/alexisbeaulieu97/architect/internal/export"
)

var exportFormats = []string{"bundle", "preview", "tsx"}

type exportOptions struct {
	files   sourceFlags
	dir     string
	formats []string
	theme   string
}

func newExportCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [ref]",
		Short: "Write a component to disk as sources, a preview page or a React wrapper",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootFlags, opts, args)
		},
	}

	opts.files.register(cmd)
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory (default from settings)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", exportFormats, "Formats to write: "+strings.Join(exportFormats, ", "))
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme of the exported preview page")

	return cmd
}

func runExport(cmd *cobra.Command, rootFlags *rootFlags, opts *exportOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags, "export")
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		if !contains(exportFormats, format) {
			return newCommandError("export", "validating --format", fmt.Errorf("unknown format %q", format), "Use any of: "+strings.Join(exportFormats, ", ")+".")
		}
	}

	dir := opts.dir
	if dir == "" {
		dir = app.settings.OutputDir
	}
	dir, err = config.ExpandPath(dir)
	if err != nil {
		return newCommandError("export", "resolving output directory", err, "Pass --dir with a valid path.")
	}

	theme, err := app.theme(opts.theme)
	if err != nil {
		return newCommandError("export", "selecting theme", err, "Use --theme dark or --theme light.")
	}

	c, err := app.component("export", args, &opts.files)
	if err != nil {
		return err
	}

	var written []string
	if contains(opts.formats, "bundle") {
		paths, err := export.WriteBundle(dir, c)
		if err != nil {
			return newCommandError("export", "writing source bundle", err, "Check that the output directory is writable.")
		}
		for _, section := range artifact.Sections {
			if path, ok := paths[section]; ok {
				written = append(written, path)
			}
		}
	}
	if contains(opts.formats, "preview") {
		path, err := export.WritePreview(dir, c, app.builder(false).Render(c, theme))
		if err != nil {
			return newCommandError("export", "writing preview page", err, "Check that the output directory is writable.")
		}
		written = append(written, path)
	}
	if contains(opts.formats, "tsx") {
		path, err := export.WriteTSX(dir, c)
		if err != nil {
			return newCommandError("export", "writing React wrapper", err, "Check that the output directory is writable.")
		}
		written = append(written, path)
	}

	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	app.log.WithFields(map[string]any{"slug": c.Slug, "files": len(written), "dir": dir}).Info("component exported")
	return nil
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
