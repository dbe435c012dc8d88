package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/lint"
)

type lintOptions struct {
	files      sourceFlags
	jsonOutput bool
}

func newLintCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [ref]",
		Short: "Check a component against the design system",
		Long: `Lint reports colors and border radii outside the design tokens, fonts that
differ from the design font, unbalanced brackets and tags, and a missing
component decorator. It exits with status 2 when any error is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, rootFlags, opts, args)
		},
	}

	opts.files.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}

func runLint(cmd *cobra.Command, rootFlags *rootFlags, opts *lintOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags, "lint")
	if err != nil {
		return err
	}

	c, err := app.component("lint", args, &opts.files)
	if err != nil {
		return err
	}

	report := lint.Check(c, app.tokens)
	app.log.WithFields(map[string]any{
		"slug":     c.Slug,
		"errors":   len(report.Errors),
		"warnings": len(report.Warnings),
	}).Debug("lint complete")

	if opts.jsonOutput {
		if err := renderLintJSON(cmd, c, report); err != nil {
			return err
		}
	} else {
		renderLintReport(cmd, app, c, report)
	}

	if !report.Passed() {
		return errLintFailed
	}
	return nil
}

type lintJSONPayload struct {
	ID     string      `json:"id"`
	Slug   string      `json:"slug"`
	Passed bool        `json:"passed"`
	Report lint.Report `json:"report"`
}

func renderLintJSON(cmd *cobra.Command, c artifact.Component, report lint.Report) error {
	if report.Errors == nil {
		report.Errors = []lint.Issue{}
	}
	if report.Warnings == nil {
		report.Warnings = []lint.Issue{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(lintJSONPayload{ID: c.ID, Slug: c.Slug, Passed: report.Passed(), Report: report})
}

func renderLintReport(cmd *cobra.Command, app *appContext, c artifact.Component, report lint.Report) {
	out := cmd.OutOrStdout()
	styles := newPalette(out, app.tokens)

	fmt.Fprintln(out, styles.title.Render("Lint: "+c.Slug))
	for _, issue := range report.Errors {
		fmt.Fprintln(out, styles.failure.Render("  error   ")+issue.String())
	}
	for _, issue := range report.Warnings {
		fmt.Fprintln(out, styles.warning.Render("  warning ")+issue.String())
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", len(report.Errors), len(report.Warnings))
	if report.Passed() {
		fmt.Fprintln(out, styles.success.Render("passed")+" "+styles.muted.Render(summary))
		return
	}
	fmt.Fprintln(out, styles.failure.Render("failed")+" "+styles.muted.Render(summary))
}
