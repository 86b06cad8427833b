// Command choicesctl lists, renders and stores the catalog enumerations.
//
// Usage:
//
//	choicesctl list [-format text|json|yaml] [-locale zh] [enum...]
//	choicesctl ddl [-dialect sqlite|postgres]
//	choicesctl sync [enum...]
//
// Settings come from CHOICES_* environment variables, optionally loaded
// from a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezkam/choices/internal/catalog"
	"github.com/rezkam/choices/internal/config"
	"github.com/rezkam/choices/pkg/i18n"
	"github.com/rezkam/choices/pkg/observability"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: failed to load .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, logger, err := observability.Init(ctx, observability.Options{
		ServiceName: cfg.Observability.ServiceName,
		Enabled:     cfg.Observability.OTelEnabled,
		Level:       cfg.Log.Level.Slog(),
		JSON:        cfg.Log.Format.JSON(),
		Writer:      stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize observability: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down observability", slog.Any("error", err))
		}
	}()

	bundle := i18n.Default()
	if err := catalog.Install(bundle); err != nil {
		logger.Error("failed to install catalog translations", slog.Any("error", err))
		return 1
	}

	app := &app{
		cfg:    cfg,
		bundle: bundle,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
	if err := app.dispatch(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		logger.Error("command failed", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
