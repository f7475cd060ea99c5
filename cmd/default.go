package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	// Running pobsd without a subcommand opens the browser.
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd, args)
	}
}
