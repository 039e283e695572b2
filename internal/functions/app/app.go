package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"contentgen/internal/functions"
	"contentgen/internal/functions/config"
	"contentgen/internal/imagestore"
	"contentgen/internal/llm"
	"contentgen/internal/server"
)

type App struct {
	server  *server.Server
	backend llm.Backend
}

func New(ctx context.Context, args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	images, err := newImageStore(cfg.ImageStore)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	// Routing & Server
	mux := http.NewServeMux()
	functions.NewHandler(backend, images).Mount(mux)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return &App{
		server:  server.New("functions", cfg.Port, server.CORS(mux)),
		backend: backend,
	}, nil
}

func newBackend(ctx context.Context, cfg *config.Config) (llm.Backend, error) {
	var inner llm.Backend
	switch cfg.Backend {
	case config.BackendGemini:
		g, err := llm.NewGeminiBackend(ctx, llm.GeminiConfig{
			APIKey:     cfg.Gemini.APIKey,
			TextModel:  cfg.Gemini.TextModel,
			ImageModel: cfg.Gemini.ImageModel,
		})
		if err != nil {
			return nil, err
		}
		inner = g
	default:
		inner = llm.NewFakeBackend()
	}
	log.Printf("functions backend: %s", inner.Name())
	return llm.Wrap(inner, llm.Logging()), nil
}

func newImageStore(cfg config.ImageStoreConfig) (imagestore.Store, error) {
	if !cfg.Enabled() {
		log.Printf("image store: memory (data URLs)")
		return imagestore.NewMemoryStore(), nil
	}
	s, err := imagestore.NewS3Store(imagestore.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		URLExpiry: cfg.URLExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}
	log.Printf("image store: s3 %s/%s", cfg.Endpoint, cfg.Bucket)
	return s, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.backend.Close(); err == nil {
		err = cerr
	}
	return err
}
