package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tracetutor %s (commit %s, built %s)\n",
			versionInfo.version, versionInfo.commit, versionInfo.date)
	},
}
