// Package app assembles concrete adapters from configuration. Both the HTTP
// server and the packctl CLI build their dependencies through it.
package app

import (
	"commute-learning-service/internal/adapters/cache"
	"commute-learning-service/internal/adapters/directions"
	"commute-learning-service/internal/adapters/kvstore"
	"commute-learning-service/internal/adapters/notion"
	"commute-learning-service/internal/adapters/repositories"
	"commute-learning-service/internal/config"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/db"
	"commute-learning-service/internal/ports"
	"commute-learning-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// Storage owns the database connection and the saved-route key-value store.
type Storage struct {
	DB     *sql.DB
	Driver string
	KV     ports.KeyValueStore

	redis *redis.Client
}

// OpenStorage connects to the configured database, creates the schema and
// selects the key-value backend.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg.DBDriver == db.DriverSQLite {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("open storage: create db dir %q: %w", dir, err)
			}
		}
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := &Storage{DB: conn, Driver: cfg.DBDriver}

	switch cfg.KVBackend {
	case config.KVBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("open storage: ping redis %s: %w", cfg.RedisAddr, err)
		}
		s.redis = client
		s.KV = kvstore.NewRedisStore(client, cfg.RedisPrefix)
	case config.KVBackendMemory:
		s.KV = kvstore.NewMemoryStore()
	default:
		s.KV = kvstore.NewSQLStore(conn, cfg.DBDriver)
	}

	return s, nil
}

func (s *Storage) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}

// LoadCatalog seeds the catalog table from cfg.CatalogPath when set, then
// reads it back. An empty table yields the built-in catalog.
func LoadCatalog(ctx context.Context, s *Storage, cfg *config.Config) (services.Catalog, error) {
	if cfg.CatalogPath != "" {
		n, err := repositories.SeedCatalogFromFile(ctx, s.DB, s.Driver, cfg.CatalogPath)
		if err != nil {
			return services.Catalog{}, fmt.Errorf("load catalog: %w", err)
		}
		log.Printf("catalog seeded path=%s packs=%d", cfg.CatalogPath, n)
	}

	return catalogFrom(ctx, repositories.NewSQLCatalogRepository(s.DB))
}

func catalogFrom(ctx context.Context, repo ports.CatalogRepository) (services.Catalog, error) {
	packs, err := repo.ListPacks(ctx)
	if err != nil {
		return services.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}

	if len(packs) == 0 {
		log.Printf("catalog source empty; using built-in catalog")
		packs = domain.DefaultCatalog()
	}

	return services.NewCatalog(packs), nil
}

// NewResolver composes the directions providers that have API keys configured.
func NewResolver(cfg *config.Config, s *Storage) *directions.Resolver {
	r := &directions.Resolver{
		Estimate: directions.NewEstimateProvider(),
		Cache:    cache.NewSQLRouteTimeCache(s.DB, s.Driver, cfg.RouteCacheTTL),
	}

	if g, err := directions.NewGoogleProvider(cfg.GoogleMapsAPIKey); err == nil {
		r.Google = g
	} else {
		log.Printf("directions: google disabled: %v", err)
	}

	if k, err := directions.NewKakaoProvider(cfg.KakaoRESTAPIKey); err == nil {
		r.Kakao = k
	} else {
		log.Printf("directions: kakao disabled: %v", err)
	}

	return r
}

// NewNotionClient returns a client even without an API key; fetches then fail
// with notion.ErrMissingAPIKey.
func NewNotionClient(cfg *config.Config) *notion.Client {
	return notion.NewClient(cfg.NotionAPIKey, cfg.NotionRatePerSec)
}

// NewAggregator builds the route-pack aggregator over catalog.
func NewAggregator(cfg *config.Config, catalog services.Catalog, fetcher ports.PackFetcher) *services.PackAggregator {
	return &services.PackAggregator{
		Catalog:      catalog,
		Fetcher:      fetcher,
		Tags:         services.DefaultScoringTags,
		Concurrency:  cfg.ExternalFetchConcurrency,
		FetchTimeout: cfg.ExternalFetchTimeout,
	}
}
