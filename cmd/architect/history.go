package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
)

func newHistoryCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and prune stored components",
	}

	cmd.AddCommand(newHistoryListCmd(rootFlags))
	cmd.AddCommand(newHistoryShowCmd(rootFlags))
	cmd.AddCommand(newHistoryRemoveCmd(rootFlags))
	cmd.AddCommand(newHistoryClearCmd(rootFlags))

	return cmd
}

type historyListOptions struct {
	jsonOutput bool
}

func newHistoryListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &historyListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored components, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "list history")
			if err != nil {
				return err
			}
			history, err := app.loadHistory("list history")
			if err != nil {
				return err
			}

			entries := history.List()
			if opts.jsonOutput {
				return renderHistoryJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No components stored yet.")
				fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'architect parse <response-file>' to add your first component.")
				return nil
			}
			return renderHistoryTable(cmd, app, entries)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderHistoryTable(cmd *cobra.Command, app *appContext, entries []artifact.Component) error {
	styles := newPalette(cmd.OutOrStdout(), app.tokens)
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "REF\tID\tSLUG\tCREATED\tPROMPT")
	for i, c := range entries {
		fmt.Fprintf(writer, "@%d\t%s\t%s\t%s\t%s\n",
			i+1,
			c.ShortID(),
			c.Slug,
			styles.muted.Render(formatRelativeTime(c.Timestamp)),
			truncateString(valueOrFallback(c.Prompt, "(no prompt)"), 40),
		)
	}

	return writer.Flush()
}

type historyJSONPayload struct {
	Version string               `json:"version"`
	Count   int                  `json:"count"`
	Entries []artifact.Component `json:"entries"`
}

func renderHistoryJSON(cmd *cobra.Command, entries []artifact.Component) error {
	if entries == nil {
		entries = []artifact.Component{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(historyJSONPayload{Version: "1.0", Count: len(entries), Entries: entries})
}

type historyShowOptions struct {
	section string
}

func newHistoryShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &historyShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Print a stored component in generator block format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "show component")
			if err != nil {
				return err
			}
			c, err := app.component("show component", args, nil)
			if err != nil {
				return err
			}

			if opts.section == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s %s\n", c.ID, c.Slug)
				if c.Prompt != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "# prompt: %s\n", c.Prompt)
				}
				fmt.Fprint(cmd.OutOrStdout(), c.Blocks().Format())
				return nil
			}

			section, ok := artifact.ParseSection(opts.section)
			if !ok {
				return newCommandError("show component", "selecting section", fmt.Errorf("unknown section %q", opts.section), "Use ts, html or scss.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Blocks().Get(section))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.section, "section", "s", "", "Print only one section: ts, html or scss")

	return cmd
}

func newHistoryRemoveCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <ref>",
		Short: "Remove one stored component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "remove component")
			if err != nil {
				return err
			}
			history, err := app.loadHistory("remove component")
			if err != nil {
				return err
			}

			removed, err := history.Remove(args[0])
			if err != nil {
				return newCommandError("remove component", "resolving reference", err, "Run 'architect history list' to see available references.")
			}
			if err := history.Save(); err != nil {
				return newCommandError("remove component", "saving history", err, "Check history file permissions and try again.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", removed.ShortID(), removed.Slug)
			return nil
		},
	}
}

func newHistoryClearCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags, "clear history")
			if err != nil {
				return err
			}
			history, err := app.loadHistory("clear history")
			if err != nil {
				return err
			}

			count := history.Len()
			history.Clear()
			if err := history.Save(); err != nil {
				return newCommandError("clear history", "saving history", err, "Check history file permissions and try again.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d component(s)\n", count)
			return nil
		},
	}
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func truncateString(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
