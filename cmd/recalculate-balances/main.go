// Command recalculate-balances re-derives the initial balances of every
// journal chain from scratch, or of one journal's successors. Useful after
// manual data fixes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/skarbnik/troop_ledger_app/internal/core/services"
	"github.com/skarbnik/troop_ledger_app/internal/platform/config"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
	"github.com/skarbnik/troop_ledger_app/internal/repositories/database/pgsql"
	"github.com/skarbnik/troop_ledger_app/pkg/database"
)

func main() {
	journalID := flag.Int64("journal-id", 0, "Optional: recalculate only the chain starting at this journal. If zero, recalculates every chain.")
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

	repos := pgsql.NewRepositoryProvider(pool)
	svcs := services.NewServiceProvider(repos)

	if *journalID != 0 {
		if err := svcs.JournalSvc.RecalculateNextInitialBalances(ctx, *journalID); err != nil {
			logger.Error("Failed to recalculate chain", slog.Int64("journal_id", *journalID), slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("recalculated chain starting at journal %d\n", *journalID)
		return
	}

	heads, err := repos.JournalRepo.ListChainHeads(ctx)
	if err != nil {
		logger.Error("Failed to list journal chains", slog.String("error", err.Error()))
		os.Exit(1)
	}
	failed := 0
	for _, head := range heads {
		if err := repos.JournalRepo.RecalculateNextInitialBalances(ctx, head); err != nil {
			logger.Error("Failed to recalculate chain", slog.Int64("journal_id", head.JournalID), slog.String("error", err.Error()))
			failed++
		}
	}
	fmt.Printf("recalculated %d of %d chains\n", len(heads)-failed, len(heads))
	if failed > 0 {
		os.Exit(1)
	}
}
