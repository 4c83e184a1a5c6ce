package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"jsonblog/cmd/app"
	"jsonblog/internal/config"
	handlers "jsonblog/internal/handler"
	"jsonblog/internal/logger"
	"jsonblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	gateway, services := app.App(context.Background(), cfg, zlog)
	defer gateway.Close()

	handler := handlers.NewHandlers(services, zlog.Named("http"))

	// setting up routes
	router := handler.Router(middleware.AuthMiddleware(services.Auth, zlog.Named("auth")))

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware(zlog.Named("access")),
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	zlog.Info("server started",
		zap.String("addr", addr),
		zap.String("store", cfg.StoreURI),
		zap.Bool("serialize_writes", cfg.SerializeWrites),
	)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
