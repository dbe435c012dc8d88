package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/tokens"
)

type tokensOptions struct {
	jsonOutput bool
	kind       string
}

func newTokensCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the design tokens components may reference as #name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "list tokens")
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(app.tokens.DesignSystem())
			}

			entries := app.tokens.Tokens()
			if opts.kind != "" {
				entries = app.tokens.OfKind(tokens.Kind(opts.kind))
				if len(entries) == 0 {
					return newCommandError("list tokens", "filtering by kind", fmt.Errorf("no tokens of kind %q", opts.kind), "Use color, font, radius or shadow.")
				}
			}

			styles := newPalette(cmd.OutOrStdout(), app.tokens)
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tKIND\tVALUE\t")
			for _, tok := range entries {
				sample := ""
				if tok.Kind == tokens.KindColor {
					sample = styles.swatch(tok.Value).Render("  ")
				}
				fmt.Fprintf(writer, "#%s\t%s\t%s\t%s\n", tok.Name, tok.Kind, tok.Value, sample)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the grouped design system as JSON")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Only list one kind: color, font, radius or shadow")

	return cmd
}
