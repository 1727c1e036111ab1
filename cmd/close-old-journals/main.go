// Command close-old-journals closes every still-open journal of past years,
// reporting per-journal verification failures instead of stopping at the
// first one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/skarbnik/troop_ledger_app/internal/core/services"
	"github.com/skarbnik/troop_ledger_app/internal/platform/config"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
	"github.com/skarbnik/troop_ledger_app/internal/repositories/database/pgsql"
	"github.com/skarbnik/troop_ledger_app/pkg/database"
)

func main() {
	beforeYear := flag.Int("before-year", time.Now().Year(), "Close open journals of years before this one (default: current year).")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := logging.WithLogger(context.Background(), logger)

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	svcs := services.NewServiceProvider(pgsql.NewRepositoryProvider(pool))

	result, err := svcs.JournalSvc.CloseOldOpenJournals(ctx, *beforeYear)
	if err != nil {
		logger.Error("Failed to close old journals", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("closed %d journals, %d could not be closed\n", result.ClosedCount, len(result.Failures))
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "journal %d (%d): %s\n", failure.JournalID, failure.Year, failure.Reason)
	}
	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}
