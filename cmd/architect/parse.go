package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
)

type parseOptions struct {
	prompt   string
	followUp string
	slug     string
}

func newParseCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [generator-output]",
		Short: "Store the component blocks of a generator response in history",
		Long: `Parse extracts the <<<TS>>>, <<<HTML>>> and <<<SCSS>>> blocks of a generator
response (a file, or stdin when the argument is omitted or "-") and records
them as the newest history entry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "Prompt that produced the response")
	cmd.Flags().StringVar(&opts.followUp, "follow-up", "", "History reference this response edits; its slug is kept")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "Slug to store the component under")

	return cmd
}

func runParse(cmd *cobra.Command, rootFlags *rootFlags, opts *parseOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags, "parse")
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return newCommandError("parse", "reading generator output", err, "Pass a readable file or pipe the response on stdin.")
	}

	history, err := app.loadHistory("parse")
	if err != nil {
		return err
	}

	slug := opts.slug
	if opts.followUp != "" && slug == "" {
		previous, err := history.Get(opts.followUp)
		if err != nil {
			return newCommandError("parse", "resolving --follow-up", err, "Run 'architect history list' to see available references.")
		}
		slug = previous.Slug
	}

	blocks := artifact.ParseBlocks(raw)
	if blocks.Empty() {
		app.log.Warn("no component blocks found; the preview will show a placeholder")
	}

	c := artifact.New(blocks, opts.prompt, slug, time.Now())
	for _, evicted := range history.Push(c) {
		app.log.WithFields(map[string]any{"id": evicted.ID, "slug": evicted.Slug}).Debug("evicted history entry")
	}
	if err := history.Save(); err != nil {
		return newCommandError("parse", "saving history", err, "Check history file permissions and try again.")
	}

	app.log.WithFields(map[string]any{"id": c.ID, "slug": c.Slug}).Info("component stored")
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.ShortID(), c.Slug)
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}
