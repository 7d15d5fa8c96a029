package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Skotchmaster/chalher_shop/internal/cli"
	"github.com/Skotchmaster/chalher_shop/internal/config"
	"github.com/Skotchmaster/chalher_shop/internal/storefront"
	pkgconfig "github.com/Skotchmaster/chalher_shop/pkg/config"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
	"github.com/Skotchmaster/chalher_shop/pkg/storeclient"
)

func open(ctx context.Context) (*storefront.App, func() error, error) {
	pkgconfig.LoadDotEnv()
	cfg, err := config.LoadStorefront()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	ctx = logging.IntoContext(ctx, logger)

	// a failed backend still yields a memory store, kvErr is then a warning
	local, closeKV, kvErr := storefront.OpenKV(ctx, cfg)
	if local == nil {
		return nil, nil, kvErr
	}

	client := storeclient.NewClient(cfg.StoreURL, cfg.StoreAPIKey, cfg.RequestTimeout)
	app := storefront.New(client, local)
	return app, closeKV, errors.Join(kvErr, app.Start(ctx))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(open).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "erreur:", err)
		os.Exit(1)
	}
}
