package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/bestseller/internal/app"
	"github.com/dropDatabas3/bestseller/internal/bootstrap"
	"github.com/dropDatabas3/bestseller/internal/config"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
	"github.com/dropDatabas3/bestseller/internal/store"
	"github.com/dropDatabas3/bestseller/internal/util"

	// Registra los adapters de store via init()
	_ "github.com/dropDatabas3/bestseller/internal/store/adapters/all"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "ruta a config.yaml (opcional)")
	flag.Parse()

	// .env es opcional; en prod todo viene del entorno
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "bestseller"})
	defer func() { _ = logger.Sync() }()
	lg := logger.L()

	if err := run(cfg); err != nil {
		lg.Fatal("service stopped with error", logger.Err(err))
	}
}

func run(cfg *config.Config) error {
	lg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─── Store ───
	dal, err := store.Open(ctx, store.AdapterConfig{
		Name:           cfg.Storage.Driver,
		DSN:            cfg.DSN(),
		Database:       cfg.Storage.Mongo.Database,
		MaxConns:       maxConns(cfg),
		ConnectTimeout: config.Duration(cfg.Storage.ConnectTimeout, 10*time.Second),
	})
	if err != nil {
		return err
	}
	lg.Info("store connected", logger.Driver(dal.Driver()), logger.String("dsn", util.MaskDSN(cfg.DSN())))

	shutdownTimeout := config.Duration(cfg.Server.ShutdownTimeout, 10*time.Second)
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dal.Close(cctx); err != nil {
			lg.Warn("store close failed", logger.Err(err))
		}
	}()

	if _, err := bootstrap.EnsureAdmin(ctx, bootstrap.AdminBootstrapConfig{
		Users:      dal.Users(),
		AdminEmail: cfg.Bootstrap.AdminEmail,
	}); err != nil {
		lg.Warn("admin bootstrap failed", logger.Err(err))
	}

	// ─── App ───
	a, err := app.New(ctx, cfg, app.Deps{DAL: dal})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func maxConns(cfg *config.Config) int {
	switch cfg.Storage.Driver {
	case "postgres":
		return cfg.Storage.Postgres.MaxConns
	case "mongo":
		return cfg.Storage.Mongo.MaxPool
	}
	return 0
}
