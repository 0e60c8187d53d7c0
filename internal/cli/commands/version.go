package commands

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := RendererFromContext(cmd.Context())
			r.Printf("connlint %s\n", version)
			r.Printf("  build date: %s\n", buildDate)
			r.Printf("  commit:     %s\n", gitCommit)
			return nil
		},
	}
}
