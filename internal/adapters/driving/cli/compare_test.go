package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgfile "github.com/crosscheck-hq/crosscheck-cli/internal/adapters/driven/config/file"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/services"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors/plaintext"
	"github.com/crosscheck-hq/crosscheck-cli/internal/report"
	filestore "github.com/crosscheck-hq/crosscheck-cli/internal/storage/file"
)

// setupTestServices wires real services over temp input and output dirs
// and returns the input dir plus a cleanup that restores package state.
func setupTestServices(t *testing.T) (string, func()) {
	t.Helper()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())

	stores := driven.FileStoreFactory(func(dir string) driven.FileStore {
		return filestore.NewStore(dir)
	})
	svc := services.NewComparisonService(stores, registry, report.NewPairwiseWriter(), report.NewMatrixWriter())

	oldService := comparisonService
	oldStore := fileStore
	oldRegistry := extractorRegistry
	oldConfig := config

	Wire(svc, filestore.NewStore(inputDir), registry, cfgfile.Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
		BlockSize: 2,
		Port:      "8080",
	})

	cleanup := func() {
		comparisonService = oldService
		fileStore = oldStore
		extractorRegistry = oldRegistry
		config = oldConfig

		compareOut = ""
		compareBlockSize = 0
		compareTarget = ""
		compareOpen = false

		rootCmd.SetArgs(nil)
	}
	return inputDir, cleanup
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompareCmd_Use(t *testing.T) {
	assert.Equal(t, "compare [input-dir]", compareCmd.Use)
}

func TestCompareCmd_Short(t *testing.T) {
	assert.Equal(t, "Compare documents and render reports", compareCmd.Short)
}

func TestCompareCmd_HasFlags(t *testing.T) {
	out := compareCmd.Flags().Lookup("out")
	require.NotNil(t, out, "out flag should exist")
	assert.Equal(t, "o", out.Shorthand)

	blockSize := compareCmd.Flags().Lookup("block-size")
	require.NotNil(t, blockSize, "block-size flag should exist")
	assert.Equal(t, "b", blockSize.Shorthand)

	target := compareCmd.Flags().Lookup("target")
	require.NotNil(t, target, "target flag should exist")
	assert.Equal(t, "t", target.Shorthand)

	require.NotNil(t, compareCmd.Flags().Lookup("open"), "open flag should exist")
}

func TestCompareCmd_FullRun(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "a.txt", "the cat sat on the mat")
	writeDoc(t, inputDir, "b.txt", "the dog sat on the rug")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"compare"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "a")
	assert.Contains(t, buf.String(), "b")
	assert.Contains(t, buf.String(), "---")
	assert.Contains(t, buf.String(), "Results saved at:")
}

func TestCompareCmd_InputDirArgument(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	otherDir := t.TempDir()
	writeDoc(t, otherDir, "x.txt", "alpha beta gamma")
	writeDoc(t, otherDir, "y.txt", "alpha beta delta")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"compare", otherDir})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "x")
	assert.Contains(t, buf.String(), "y")
}

func TestCompareCmd_Targeted(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "first.txt", "the cat sat on the mat")
	writeDoc(t, inputDir, "second.txt", "the dog sat on the rug")
	target := writeDoc(t, t.TempDir(), "draft.txt", "the cat sat on a mat")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"compare", "--target", target, inputDir})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "draft")
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "Results saved at:")
}

func TestCompareCmd_NotEnoughDocuments(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "only.txt", "a single document")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"compare"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "comparison failed")
}

func TestCompareCmd_InvalidBlockSize(t *testing.T) {
	inputDir, cleanup := setupTestServices(t)
	defer cleanup()

	writeDoc(t, inputDir, "a.txt", "one two")
	writeDoc(t, inputDir, "b.txt", "one two")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"compare", "--block-size", "-3"})

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestCompareCmd_ServiceNotConfigured(t *testing.T) {
	oldService := comparisonService
	comparisonService = nil
	defer func() {
		comparisonService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"compare"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "comparison service not configured")
}
