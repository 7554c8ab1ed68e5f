package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	collectionSvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
	selectionSvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
)

func main() {
	// conf.Parse reads os.Args; the command line belongs to cobra.
	args := os.Args[1:]
	os.Args = os.Args[:1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = config.LogFormatText
	}
	log := logger.NewWithWriter(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg.Workspace, func(ctx context.Context) (*env, error) {
		return openEnv(ctx, cfg, log)
	})
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

// env is what a command needs: the services and the infrastructure to close.
type env struct {
	app        *app.Application
	collection *collectionSvcs.CollectionService
	selection  *selectionSvcs.SelectionService
}

func (e *env) Close() error {
	if e.app == nil {
		return nil
	}
	return e.app.Close()
}

// openEnv opens the configured store and wires the services.
func openEnv(ctx context.Context, cfg *config.Config, log logger.Logger) (*env, error) {
	a, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	coll, err := collectionSvcs.New(a)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	sel, err := selectionSvcs.New(a, coll.Collection)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return &env{app: a, collection: coll.Collection, selection: sel.Selection}, nil
}
