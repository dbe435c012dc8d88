package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/pkg/diff"
)

type diffOptions struct {
	section  string
	rendered bool
	theme    string
}

func newDiffCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <old-ref> [new-ref]",
		Short: "Show a unified diff between two stored components",
		Long: `Diff compares two history entries section by section. With one reference
the entry is compared against the latest. --rendered compares the preview
documents instead of the sources.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.section, "section", "s", "", "Compare only one section: ts, html or scss")
	cmd.Flags().BoolVar(&opts.rendered, "rendered", false, "Compare the rendered preview documents")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme used with --rendered")

	return cmd
}

func runDiff(cmd *cobra.Command, rootFlags *rootFlags, opts *diffOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags, "diff")
	if err != nil {
		return err
	}

	older, err := app.component("diff", args[:1], nil)
	if err != nil {
		return err
	}
	newer, err := app.component("diff", args[1:], nil)
	if err != nil {
		return err
	}

	oldLabel := older.ShortID() + " " + older.Slug
	newLabel := newer.ShortID() + " " + newer.Slug
	out := cmd.OutOrStdout()

	if opts.rendered {
		theme, err := app.theme(opts.theme)
		if err != nil {
			return newCommandError("diff", "selecting theme", err, "Use --theme dark or --theme light.")
		}
		builder := app.builder(false)
		fmt.Fprint(out, diff.GenerateUnifiedDiff(
			[]byte(builder.Render(older, theme)), []byte(builder.Render(newer, theme)),
			oldLabel+" (rendered)", newLabel+" (rendered)"))
		return nil
	}

	sections := artifact.Sections
	if opts.section != "" {
		section, ok := artifact.ParseSection(opts.section)
		if !ok {
			return newCommandError("diff", "selecting section", fmt.Errorf("unknown section %q", opts.section), "Use ts, html or scss.")
		}
		sections = []artifact.Section{section}
	}

	oldBlocks, newBlocks := older.Blocks(), newer.Blocks()
	changed := false
	for _, section := range sections {
		text := diff.GenerateUnifiedDiff(
			[]byte(oldBlocks.Get(section)), []byte(newBlocks.Get(section)),
			oldLabel+" ("+string(section)+")", newLabel+" ("+string(section)+")")
		if text == "" {
			continue
		}
		changed = true
		fmt.Fprint(out, text)
	}
	if !changed {
		fmt.Fprintln(out, "No differences.")
	}
	return nil
}
