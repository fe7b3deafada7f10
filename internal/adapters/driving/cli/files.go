package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage source documents",
	Long:  `List or delete the documents in the input directory.`,
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List source documents",
	Args:  cobra.NoArgs,
	RunE:  runFilesList,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete [serial...]",
	Short: "Delete source documents by serial number",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFilesDelete,
}

func init() {
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	rootCmd.AddCommand(filesCmd)
}

func runFilesList(cmd *cobra.Command, _ []string) error {
	if fileStore == nil {
		return errors.New("file store not configured")
	}

	files, err := fileStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		cmd.Printf("No files found in %s\n", fileStore.Dir())
		return nil
	}

	cmd.Printf("Files in %s:\n\n", fileStore.Dir())
	for _, f := range files {
		cmd.Printf("  %3d  %-40s %-6s %s\n", f.ID, f.Name, f.Extension, f.Size)
	}
	cmd.Printf("\nTotal: %d files\n", len(files))
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	if fileStore == nil {
		return errors.New("file store not configured")
	}

	serials := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid serial number %q", arg)
		}
		serials = append(serials, n)
	}

	deleted, missing, err := fileStore.Delete(context.Background(), serials)
	if err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}

	cmd.Printf("%d file(s) deleted", deleted)
	if missing > 0 {
		cmd.Printf(", %d not found", missing)
	}
	cmd.Println()
	return nil
}
