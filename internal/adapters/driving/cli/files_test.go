package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	filestore "github.com/crosscheck-hq/crosscheck-cli/internal/storage/file"
)

func TestFilesCmd_Use(t *testing.T) {
	assert.Equal(t, "files", filesCmd.Use)
}

func TestFilesListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", filesListCmd.Use)
}

func TestFilesDeleteCmd_Use(t *testing.T) {
	assert.Equal(t, "delete [serial...]", filesDeleteCmd.Use)
}

func TestFilesListCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files", "list"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No files found")
}

func TestFilesListCmd_ListsFiles(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "report.txt", "some words here")
	writeDoc(t, inputDir, "notes.txt", "other words")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files", "list"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "report.txt")
	assert.Contains(t, buf.String(), "notes.txt")
	assert.Contains(t, buf.String(), "TXT")
	assert.Contains(t, buf.String(), "Total: 2 files")
}

func TestFilesDeleteCmd_Deletes(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "a.txt", "x")
	writeDoc(t, inputDir, "b.txt", "y")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files", "delete", "1"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "1 file(s) deleted")
	assert.NoFileExists(t, filepath.Join(inputDir, "a.txt"))
	assert.FileExists(t, filepath.Join(inputDir, "b.txt"))
}

func TestFilesDeleteCmd_ReportsMissing(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "a.txt", "x")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"files", "delete", "1", "9"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "1 file(s) deleted")
	assert.Contains(t, buf.String(), "1 not found")
}

func TestFilesDeleteCmd_InvalidSerial(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"files", "delete", "abc"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid serial number")
}

func TestFilesDeleteCmd_RequiresArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"files", "delete"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestFilesListCmd_StoreNotConfigured(t *testing.T) {
	oldStore := fileStore
	fileStore = nil
	defer func() {
		fileStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"files", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file store not configured")
}

func TestFilesListCmd_MissingDir(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	// Point the store at a dir that does not exist.
	fileStore = filestore.NewStore(filepath.Join(t.TempDir(), "gone"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"files", "list"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list files")
}
