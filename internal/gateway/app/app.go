package app

import (
	"context"
	"fmt"
	"net/http"

	"contentgen/internal/functions"
	"contentgen/internal/gateway/config"
	"contentgen/internal/gateway/handler"
	"contentgen/internal/gateway/session"
	"contentgen/internal/server"
)

type App struct {
	server   *server.Server
	registry *session.Registry
}

func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	client, err := functions.NewClient(functions.ClientConfig{
		BaseURL: cfg.FunctionsURL,
		APIKey:  cfg.FunctionsAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init functions client: %w", err)
	}
	registry, err := session.NewRegistry(cfg.SessionCapacity, client)
	if err != nil {
		return nil, err
	}

	// Routing & Server
	mux := http.NewServeMux()
	handler.NewSessionHandler(registry).Register(mux)

	return &App{
		server:   server.New("gateway", cfg.Port, server.CORS(mux)),
		registry: registry,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.registry.Close()
	return err
}
