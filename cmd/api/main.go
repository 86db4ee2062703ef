package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mbertolucci/conciliador/internal/bankimport"
	"github.com/mbertolucci/conciliador/internal/config"
	"github.com/mbertolucci/conciliador/internal/database"
	conciliadorHttp "github.com/mbertolucci/conciliador/internal/http"
	importHandler "github.com/mbertolucci/conciliador/internal/http/bankimport"
	matchingHandler "github.com/mbertolucci/conciliador/internal/http/matching"
	reconciliationHandler "github.com/mbertolucci/conciliador/internal/http/reconciliation"
	ledgerStore "github.com/mbertolucci/conciliador/internal/ledger/store"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
	reconciliationStore "github.com/mbertolucci/conciliador/internal/reconciliation/store"
	titleStore "github.com/mbertolucci/conciliador/internal/title/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	matchingCfg := matching.Config{
		ValueTolerance:    cfg.Matching.ValueTolerance,
		DateToleranceDays: cfg.Matching.DateToleranceDays,
		MinScore:          cfg.Matching.MinScore,
	}

	var (
		transactions = ledgerStore.New(db)
		titles       = titleStore.New(db)

		suggester             = matching.NewSuggester(transactions, titles, matchingCfg)
		reconciliationService = reconciliation.NewService(reconciliationStore.New(db), transactions, titles, suggester)
		importService         = bankimport.NewService(transactions)
	)

	var (
		matchingH       = matchingHandler.NewHandler(reconciliationService, matchingCfg)
		reconciliationH = reconciliationHandler.NewHandler(reconciliationService)
		importH         = importHandler.NewHandler(importService)
	)

	router := conciliadorHttp.New(matchingH, reconciliationH, importH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
