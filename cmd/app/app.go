package app

import (
	"context"

	"go.uber.org/zap"

	"jsonblog/internal/config"
	"jsonblog/internal/repository"
	"jsonblog/internal/service"
	"jsonblog/internal/storage"
)

// App opens the configured store, makes sure it holds a document and wires the services over it.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Gateway, *service.Service) {
	// connection store
	gateway, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.String("uri", cfg.StoreURI), zap.Error(err))
	}

	if err := storage.Bootstrap(ctx, gateway, log); err != nil {
		log.Fatal("failed to initialise store", zap.Error(err))
	}

	// enabling dependencies
	repo := repository.NewRepository(nil)

	services, err := service.NewService(repo, gateway, cfg, nil, log)
	if err != nil {
		log.Fatal("failed to build services", zap.Error(err))
	}

	return gateway, services
}
