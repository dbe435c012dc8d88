package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "architect",
		Short: "Architect renders generated components into offline preview pages",
		Long: `Architect takes the class source, template and stylesheet of a generated
component and renders them into one self-contained HTML page that can be
previewed without a build step or network access to the framework.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default ~/.architect/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newParseCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newInspectCmd(flags))
	cmd.AddCommand(newLintCmd(flags))
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newTokensCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
