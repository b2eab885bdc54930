package main

import (
	"commute-learning-service/internal/api"
	"commute-learning-service/internal/api/handlers"
	"commute-learning-service/internal/app"
	"commute-learning-service/internal/config"
	"commute-learning-service/internal/services"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, Notion, directions) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// run serves until ctx is done. Storage is closed on every return path.
func run(ctx context.Context, cfg *config.Config) error {
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Printf("close storage err=%v", err)
		}
	}()

	catalog, err := app.LoadCatalog(ctx, storage, cfg)
	if err != nil {
		return err
	}
	log.Printf("catalog loaded packs=%d", catalog.Len())

	notionClient := app.NewNotionClient(cfg)

	router := api.NewRouter(api.Deps{
		Catalog:     catalog,
		Aggregator:  app.NewAggregator(cfg, catalog, notionClient),
		Routes:      app.NewResolver(cfg, storage),
		Notion:      notionClient,
		SavedRoutes: services.NewSavedRouteStore(storage.KV),
		Budget: handlers.Budget{
			Default: cfg.DefaultMinutes,
			Min:     cfg.MinMinutes,
			Max:     cfg.MaxMinutes,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped err=%v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown err=%v", err)
	}

	return nil
}
