// Package cli provides the cobra command tree for crosscheck.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	cfgfile "github.com/crosscheck-hq/crosscheck-cli/internal/adapters/driven/config/file"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driving"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by Wire before Execute.
var (
	comparisonService driving.ComparisonRunner
	fileStore         driven.FileStore
	extractorRegistry driven.ExtractorRegistry
	config            = cfgfile.Default()
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "crosscheck",
	Short: "Pairwise document similarity reports",
	Long: `Crosscheck compares a directory of text, PDF and word-processor
documents pairwise and renders HTML reports: a summary matrix of
similarity scores plus a side-by-side diff for every compared pair.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
}

// Wire injects the adapters the commands depend on.
func Wire(svc driving.ComparisonRunner, store driven.FileStore, registry driven.ExtractorRegistry, cfg cfgfile.Config) {
	comparisonService = svc
	fileStore = store
	extractorRegistry = registry
	config = cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, so the
// serve command can shut down on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
