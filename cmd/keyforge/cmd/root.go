package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keyforge",
		Short: "keyforge - product activation serial generator",
		Long: `keyforge issues 25-symbol product activation serials that carry a
protocol version, a usage count and feature flags sealed by a per-product checksum.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
