package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/recruiter/internal/candidate"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the evaluation workflow as a Mermaid flowchart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), candidate.Mermaid())
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
