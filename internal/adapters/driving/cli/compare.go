package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driving"
)

var (
	compareOut       string
	compareBlockSize int
	compareTarget    string
	compareOpen      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-dir]",
	Short: "Compare documents and render reports",
	Long: `Compares every document in the input directory against every other
one and renders the score matrix plus per-pair diff reports.

With --target, compares a single document against the directory
instead (the target itself is excluded by name).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "Output directory for reports (default from config)")
	compareCmd.Flags().IntVarP(&compareBlockSize, "block-size", "b", 0, "Highlight granularity in tokens (default from config)")
	compareCmd.Flags().StringVarP(&compareTarget, "target", "t", "", "Compare this document against the directory")
	compareCmd.Flags().BoolVar(&compareOpen, "open", false, "Open the summary report when done")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	inputDir := config.InputDir
	if len(args) == 1 {
		inputDir = args[0]
	}

	opts := driving.RunOptions{
		OutputDir: config.OutputDir,
		BlockSize: config.BlockSize,
	}
	if compareOut != "" {
		opts.OutputDir = compareOut
	}
	if compareBlockSize != 0 {
		opts.BlockSize = compareBlockSize
	}

	ctx := context.Background()

	var result *domain.RunResult
	var err error
	if compareTarget != "" {
		result, err = comparisonService.RunTargeted(ctx, compareTarget, inputDir, opts)
	} else {
		result, err = comparisonService.RunFull(ctx, inputDir, opts)
	}
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	printMatrix(cmd, result.Matrix)

	for _, s := range result.Skipped {
		cmd.Printf("Skipped %s\n", s)
	}
	cmd.Printf("\nResults saved at: %s\n", result.SummaryPath)

	if compareOpen {
		if err := openPath(result.SummaryPath); err != nil {
			cmd.Printf("Could not open summary: %v\n", err)
		}
	}
	return nil
}

// printMatrix writes the score matrix as a plain text table.
func printMatrix(cmd *cobra.Command, matrix *domain.ScoreMatrix) {
	cmd.Println()
	cmd.Printf("%-24s", "")
	for _, name := range matrix.ColNames {
		cmd.Printf("%-24s", name)
	}
	cmd.Println()

	for i, name := range matrix.RowNames {
		cmd.Printf("%-24s", name)
		for _, score := range matrix.Cells[i] {
			if score == domain.SelfScore {
				cmd.Printf("%-24s", "---")
			} else {
				cmd.Printf("%-24s", fmt.Sprintf("%.2f %%", score*100))
			}
		}
		cmd.Println()
	}
}

// openPath opens a file using the system default handler.
func openPath(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
