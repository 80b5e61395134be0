// Command zeectl is the operator tool for the admin backend: it compresses images
// the way the upload path does, prices orders against a rule file, and mints
// tokens for local testing.
package main

import (
	"os"

	"zeecrown-admin/pkg/logger"

	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zeectl",
		Short:         "Operator tooling for the ZeeCrown admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWithWriter(cmd.ErrOrStderr(), logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newCompressCmd(), newQuoteCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("zeectl failed")
		os.Exit(1)
	}
}
