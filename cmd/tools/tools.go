package tools

import (
	"github.com/spf13/cobra"
)

// NewToolsCommand returns the tools command group
func NewToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "simcheck miscellaneous tools",
	}

	cmd.AddCommand(newDocsCommand())

	return cmd
}
