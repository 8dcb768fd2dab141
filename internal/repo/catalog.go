package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// CatalogRepo stores versions of the catalog document.
type CatalogRepo interface {
	// LatestDocument returns the raw JSON of the newest version, byte for byte
	// as published. Returns domain.ErrNotFound if nothing was ever published.
	LatestDocument(ctx context.Context) ([]byte, error)

	// Publish stores doc as a new version.
	Publish(ctx context.Context, doc []byte, note string) (domain.CatalogDocument, error)

	// ListVersions returns one page of versions, newest first, and the total count.
	ListVersions(ctx context.Context, p domain.PaginationParams) ([]domain.CatalogDocument, int64, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// LatestDocument reads the document column as text so key order survives.
func (r *pgCatalogRepo) LatestDocument(ctx context.Context) ([]byte, error) {
	const q = `
		SELECT document::text
		FROM catalog_documents
		ORDER BY version DESC
		LIMIT 1`

	var doc string
	if err := r.db.QueryRow(ctx, q).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.CatalogRepo.LatestDocument: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.CatalogRepo.LatestDocument: %w", err)
	}
	return []byte(doc), nil
}

// Publish inserts a new version. Postgres rejects a document that is not JSON.
func (r *pgCatalogRepo) Publish(ctx context.Context, doc []byte, note string) (domain.CatalogDocument, error) {
	const q = `
		INSERT INTO catalog_documents (document, note)
		VALUES (@document::json, @note)
		RETURNING version, note, octet_length(document::text), created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"document": string(doc), "note": note})
	result, err := scanCatalogDocument(row)
	if err != nil {
		return domain.CatalogDocument{}, fmt.Errorf("repo.CatalogRepo.Publish: %w", err)
	}
	return result, nil
}

// ListVersions returns one page of versions ordered by version descending.
func (r *pgCatalogRepo) ListVersions(ctx context.Context, p domain.PaginationParams) ([]domain.CatalogDocument, int64, error) {
	const countQ = `SELECT COUNT(*) FROM catalog_documents`
	const q = `
		SELECT version, note, octet_length(document::text), created_at
		FROM catalog_documents
		ORDER BY version DESC
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListVersions: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListVersions: %w", err)
	}
	defer rows.Close()

	docs := []domain.CatalogDocument{}
	for rows.Next() {
		d, err := scanCatalogDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.CatalogRepo.ListVersions: scan: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListVersions: rows: %w", err)
	}
	return docs, total, nil
}

func scanCatalogDocument(s scanner) (domain.CatalogDocument, error) {
	var d domain.CatalogDocument
	if err := s.Scan(&d.Version, &d.Note, &d.Size, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CatalogDocument{}, domain.ErrNotFound
		}
		return domain.CatalogDocument{}, err
	}
	return d, nil
}
