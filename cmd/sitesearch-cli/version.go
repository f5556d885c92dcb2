package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/sitesearch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version information",
	Args:  cobra.NoArgs,
	RunE:  versionCmdRun,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func versionCmdRun(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\ndate: %s\n",
		version.Version, version.Commit, version.Date)
	if err != nil {
		return fmt.Errorf("failed to print version: %w", err)
	}
	return nil
}
