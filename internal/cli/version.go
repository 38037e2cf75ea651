package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("silence-reporter %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
