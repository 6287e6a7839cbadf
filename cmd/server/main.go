// Package main is the entry point for the qlab quantum experiment service.
// It assembles experiment configurations from client parameters, resolves
// noise/state compatibility conflicts, simulates the resulting circuits, and
// stores the outcomes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/qlab/internal/config"
	"github.com/aristath/qlab/internal/database"
	"github.com/aristath/qlab/internal/experiment"
	experimenthandlers "github.com/aristath/qlab/internal/experiment/handlers"
	"github.com/aristath/qlab/internal/noise"
	"github.com/aristath/qlab/internal/results"
	"github.com/aristath/qlab/internal/server"
	"github.com/aristath/qlab/internal/simulator"
	"github.com/aristath/qlab/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting qlab")

	resultsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "results.db"),
		Profile: database.ProfileStandard,
		Name:    "results",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open results database")
	}
	defer resultsDB.Close()

	repo := results.NewRepository(resultsDB.Conn(), log)
	if err := repo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate results database")
	}

	catalog := noise.NewCatalog(log)
	assembler := experiment.NewAssembler(catalog, log)
	sim := simulator.NewService(catalog, cfg.MaxDensityQubits, log)

	retention := results.NewRetentionJob(repo, cfg.RetentionDays, cfg.CleanupSchedule, log)
	if err := retention.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start retention job")
	}

	handlers := experimenthandlers.NewHandler(assembler, sim, repo, catalog, log)

	srv := server.New(server.Config{
		Log:                log,
		ResultsDB:          resultsDB,
		Config:             cfg,
		ExperimentHandlers: handlers,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	retention.Stop()

	// Give in-flight requests up to 10 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := resultsDB.WALCheckpoint("TRUNCATE"); err != nil {
		log.Warn().Err(err).Msg("WAL checkpoint failed during shutdown")
	}

	log.Info().Msg("Server stopped")
}
