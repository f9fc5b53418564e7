package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pamoja-lab/cdf-tracker/dao/query"
	"github.com/pamoja-lab/cdf-tracker/internal"
	"github.com/pamoja-lab/cdf-tracker/internal/handler"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
	"github.com/pamoja-lab/cdf-tracker/pkg/objectstore"
)

// @title CDF Tracker API
// @version 1.0
// @description API server for the Constituency Development Fund project tracker.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logutils.Log.Fatalf("load config: %v", err)
	}

	db, err := query.Open(cfg)
	if err != nil {
		logutils.Log.Fatalf("connect database: %v", err)
	}
	if err = query.Migrate(db); err != nil {
		logutils.Log.Fatalf("migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := objectstore.NewMinioStore(ctx, cfg)
	cancel()
	if err != nil {
		logutils.Log.Fatalf("connect object store: %v", err)
	}

	tokenMgr := util.NewTokenManager(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.AccessTokenExpiryHour,
		cfg.Auth.RefreshTokenExpiryHour,
	)

	backend := internal.Register(&handler.RegisterConfig{
		DB:       db,
		Config:   cfg,
		TokenMgr: tokenMgr,
		Store:    store,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           backend.R,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logutils.Log.Infof("listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutils.Log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logutils.Log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logutils.Log.Errorf("shutdown: %v", err)
	}
}
