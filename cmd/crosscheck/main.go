package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cfgfile "github.com/crosscheck-hq/crosscheck-cli/internal/adapters/driven/config/file"
	"github.com/crosscheck-hq/crosscheck-cli/internal/adapters/driving/cli"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/services"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors/docx"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors/odt"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors/pdf"
	"github.com/crosscheck-hq/crosscheck-cli/internal/extractors/plaintext"
	"github.com/crosscheck-hq/crosscheck-cli/internal/report"
	filestore "github.com/crosscheck-hq/crosscheck-cli/internal/storage/file"
)

func main() {
	cfg := loadConfig()

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(docx.New())
	registry.Register(odt.New())
	registry.Register(pdf.New())

	stores := driven.FileStoreFactory(func(dir string) driven.FileStore {
		return filestore.NewStore(dir)
	})

	svc := services.NewComparisonService(
		stores,
		registry,
		report.NewPairwiseWriter(),
		report.NewMatrixWriter(),
	)

	cli.Wire(svc, filestore.NewStore(cfg.InputDir), registry, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the persisted configuration, falling back to the
// defaults when no config file exists or it cannot be read.
func loadConfig() cfgfile.Config {
	store, err := cfgfile.NewConfigStore("")
	if err != nil {
		return cfgfile.Default()
	}
	cfg, err := store.Load()
	if err != nil {
		return cfgfile.Default()
	}
	return cfg
}
