// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdelrahman21-arch/book-store-demo/internal/inventory"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/migration"
	pgstore "github.com/abdelrahman21-arch/book-store-demo/internal/platform/postgres"
	redisstore "github.com/abdelrahman21-arch/book-store-demo/internal/platform/redis"
	"github.com/abdelrahman21-arch/book-store-demo/internal/report"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DatabaseURL   string
	RedisURL      string
	Migrate       bool
	MigrationPath string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import one inventory CSV file",
		Long: `Import a bulk inventory CSV file into the bookstore database.

The whole file is applied inside one transaction: either every valid row
lands or none do. Rows missing a required name are skipped and reported in
the printed summary.

Example:
  importctl import --database-url postgres://localhost/bookstore inventory.csv
  BOOKSTORE_DATABASE_URL=postgres://localhost/bookstore importctl import inventory.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL connection URL")
	cmd.Flags().StringVar(&opts.RedisURL, "redis-url", "", "Redis URL; when set, cached reports for touched stores are invalidated")
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "run pending schema migrations before importing")
	cmd.Flags().StringVar(&opts.MigrationPath, "migration-path", "./migrations", "path to migration files")
	_ = viper.BindPFlag("database_url", cmd.Flags().Lookup("database-url"))
	_ = viper.BindPFlag("redis_url", cmd.Flags().Lookup("redis-url"))

	return cmd
}

func runImport(parent context.Context, opts *ImportOptions, path string) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	databaseURL := opts.DatabaseURL
	if databaseURL == "" {
		databaseURL = viper.GetString("database_url")
	}
	if databaseURL == "" {
		return fmt.Errorf("no database URL: pass --database-url or set BOOKSTORE_DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	pool, err := pgstore.NewPool(ctx, databaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if opts.Migrate {
		if err := migration.RunUp(databaseURL, opts.MigrationPath, logger); err != nil {
			return err
		}
	}

	// Redis is optional on the CLI; without it, today's cached reports for
	// the touched stores stay stale until their keys expire.
	var cache inventory.ReportCache
	redisURL := opts.RedisURL
	if redisURL == "" {
		redisURL = viper.GetString("redis_url")
	}
	if redisURL != "" {
		client, err := redisstore.NewClient(ctx, redisURL, logger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		cache = report.NewCache(client, logger)
	}

	service := inventory.NewService(inventory.NewUnitOfWork(pool), cache, logger)

	summary, err := service.Import(ctx, file)
	if err != nil {
		return fmt.Errorf("import aborted, nothing was written: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
