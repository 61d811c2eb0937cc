package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mohanad/carpriced/config"
	"github.com/mohanad/carpriced/model"
	"github.com/mohanad/carpriced/pricing"
	"github.com/mohanad/carpriced/rates"
	"github.com/mohanad/carpriced/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg := config.FromEnv()

	// Model artifacts. Failure disables prediction but not the service: the
	// page still renders and reports the feature as unavailable.
	var predictor model.Predictor
	var schema *pricing.Schema
	artifacts, err := model.LoadArtifacts(cfg.ModelDir)
	if err != nil {
		log.Error().Err(err).Str("modelDir", cfg.ModelDir).
			Msg("failed to load model artifacts, prediction disabled")
	} else {
		schema, err = pricing.BuildSchema(artifacts.Columns)
		if err != nil {
			log.Error().Err(err).Msg("artifact column list does not match declared columns, prediction disabled")
		} else {
			predictor = model.NewPredictor(artifacts)
			log.Info().Int("columns", len(artifacts.Columns)).Msg("model artifacts loaded")
		}
	}

	// Prediction history is optional.
	var store storage.PredictionStore
	if cfg.DBPath != "" {
		sqliteStore, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("dbPath", cfg.DBPath).Msg("failed to open prediction store, history disabled")
		} else {
			store = sqliteStore
			defer sqliteStore.Close()
			log.Info().Str("dbPath", cfg.DBPath).Msg("prediction store initialized")
		}
	}

	rateCache := rates.NewCache(rates.NewClient(rates.ClientOpts{BaseURL: cfg.RatesBaseURL}), cfg.RatesTTL)

	server := NewServer(ServerOpts{
		Predictor: predictor,
		Schema:    schema,
		RateCache: rateCache,
		Store:     store,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Warm the rate cache so the first prediction doesn't wait on the
	// network. Fetch never fails.
	rateCache.Table(ctx)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}
