package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/chalher_shop/internal/config"
	"github.com/Skotchmaster/chalher_shop/internal/events"
	"github.com/Skotchmaster/chalher_shop/internal/httpserver"
	"github.com/Skotchmaster/chalher_shop/internal/repo"
	"github.com/Skotchmaster/chalher_shop/internal/search"
	"github.com/Skotchmaster/chalher_shop/internal/service"
	pkgconfig "github.com/Skotchmaster/chalher_shop/pkg/config"
	"github.com/Skotchmaster/chalher_shop/pkg/db"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

func main() {
	pkgconfig.LoadDotEnv()
	cfg, err := config.LoadStoreAPI()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx := logging.IntoContext(context.Background(), logger)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}

	Repo := &repo.GormRepo{DB: database}
	if err := Repo.Migrate(initCtx); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}

	catalogService := &service.CatalogService{Repo: Repo}
	if cfg.SeedCatalog {
		n, err := catalogService.Seed(initCtx)
		if err != nil {
			cancel()
			log.Fatalf("seed catalog: %v", err)
		}
		logger.Info("catalog_seeded", "inserted", n)
	}

	if cfg.ESURL != "" {
		es, err := search.NewClient(initCtx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			catalogService.Index = &search.Index{ES: es, Name: cfg.ESIndex}
			if err := catalogService.Reindex(initCtx); err != nil {
				logger.Warn("search_reindex_failed", "error", err)
			}
		}
	}
	cancel()

	producer := events.New(cfg.Brokers())

	sqlDB, err := database.DB()
	if err != nil {
		log.Fatalf("db handle: %v", err)
	}

	e := httpserver.New(logger, &httpserver.Deps{
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogService},
		CartItemHandler: &httpserver.CartItemHTTP{Svc: &service.CartService{Repo: Repo, Events: producer}},
		APIKeySecret:    []byte(cfg.StoreJWTSecret),
		Ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return sqlDB.PingContext(pingCtx)
		},
	})

	go func() {
		logger.Info("server_starting", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("server_stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown_failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	_ = sqlDB.Close()

	logger.Info("server_stopped")
}
