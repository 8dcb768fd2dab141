package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/hunt-packages/backend/internal/catalog"
	"github.com/pkordes/hunt-packages/backend/internal/config"
	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/repo"
	"github.com/pkordes/hunt-packages/backend/migrations"
)

// catalogSource builds the catalog source cfg selects. The returned func
// releases anything the source holds open.
func catalogSource(ctx context.Context, cfg config.Config, log *slog.Logger) (catalog.Source, func(), error) {
	switch cfg.CatalogSource() {
	case config.SourceDatabase:
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		log.Info("database connection established")

		if err := migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store := repo.NewCatalogRepo(pool)
		if cfg.CatalogPath != "" {
			if err := seedCatalog(ctx, store, cfg.CatalogPath, log); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return catalog.DocumentSource{Store: store}, pool.Close, nil

	case config.SourceURL:
		log.Info("catalog source", "url", cfg.CatalogURL)
		src := catalog.HTTPSource{
			URL:    cfg.CatalogURL,
			Client: &http.Client{Timeout: cfg.CatalogFetchTimeout},
		}
		return src, func() {}, nil

	default:
		log.Info("catalog source", "path", cfg.CatalogPath)
		return catalog.FileSource{Path: cfg.CatalogPath}, func() {}, nil
	}
}

// migrate applies pending goose migrations. goose needs database/sql, so the
// pool is wrapped for the duration of the run.
func migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// seedCatalog publishes the document at path when the database holds no
// catalog yet. The document is parsed first so a broken file never becomes
// the live catalog.
func seedCatalog(ctx context.Context, store repo.CatalogRepo, path string, log *slog.Logger) error {
	_, total, err := store.ListVersions(ctx, domain.NewPaginationParams(nil, nil))
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if total > 0 {
		log.Info("catalog already published", "versions", total)
		return nil
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if _, err := catalog.Parse(doc); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	published, err := store.Publish(ctx, doc, "seeded from "+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("catalog seeded", "version", published.Version, "bytes", published.Size)
	return nil
}
