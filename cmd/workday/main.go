package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"workday/internal/cli"
	apphttp "workday/internal/http"
	applog "workday/internal/log"
	"workday/internal/screens"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	repo := cli.InitSQLite(logger, cfg)
	defer repo.Close()

	sc := screens.New(repo, cfg.ExportDir, logger)
	srv := apphttp.NewServer(cfg.ListenAddr(), sc, repo, apphttp.Options{Logger: logger})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting workday server",
			"addr", srv.Addr,
			applog.FieldDBPath, repo.Path(),
			applog.FieldOperation, applog.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "addr", srv.Addr)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
