// Command bank-statement-import books a parsed bank-statement file against a
// unit's bank journals and records an audit log of the outcome.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skarbnik/troop_ledger_app/internal/core/services"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
	"github.com/skarbnik/troop_ledger_app/internal/platform/config"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
	"github.com/skarbnik/troop_ledger_app/internal/repositories/database/pgsql"
	"github.com/skarbnik/troop_ledger_app/pkg/database"
)

func main() {
	unitCode := flag.String("unit", "", "Unit code whose bank journal receives the records (required).")
	filePath := flag.String("file", "", "Path to the statement file: a JSON array of parsed records (required).")
	accountNumber := flag.String("account", "", "Optional: bank account number recorded in the audit log.")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *unitCode == "" || *filePath == "" {
		fmt.Fprintln(os.Stderr, "both -unit and -file are required")
		flag.Usage()
		os.Exit(2)
	}

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

	data, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Error("Failed to read statement file", slog.String("file", *filePath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	var records []dto.StatementRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Error("Failed to parse statement file", slog.String("file", *filePath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	unit, err := repos.UnitRepo.FindUnitByCode(ctx, *unitCode)
	if err != nil {
		logger.Error("Failed to find unit", slog.String("unit", *unitCode), slog.String("error", err.Error()))
		os.Exit(1)
	}

	importLog, err := svcs.ImportSvc.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:        unit.UnitID,
		FileName:      filepath.Base(*filePath),
		AccountNumber: *accountNumber,
		Records:       records,
	})
	if err != nil {
		logger.Error("Import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("imported %d of %d records (%d failed)\n", importLog.SuccessCount, len(records), importLog.ErrorCount)
	for _, msg := range importLog.ErrorMessages {
		fmt.Fprintln(os.Stderr, msg)
	}
	if importLog.Failed() {
		os.Exit(1)
	}
}
