package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// Source fetches the raw catalog document.
// Errors are treated as transient and retried by the Accessor unless they are
// wrapped with Permanent.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// FileSource reads the catalog document from a file on disk.
// A missing file is permanent.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Permanent(fmt.Errorf("catalog.FileSource: %w", err))
	}
	if err != nil {
		return nil, fmt.Errorf("catalog.FileSource: %w", err)
	}
	return b, nil
}

// HTTPSource GETs the catalog document from a URL.
// 5xx responses and transport errors are transient; other non-2xx responses
// are permanent.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// maxDocumentBytes bounds how much of a response body is read.
const maxDocumentBytes = 8 << 20

// Fetch implements Source.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, Permanent(fmt.Errorf("catalog.HTTPSource: build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog.HTTPSource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("catalog.HTTPSource: GET %s: unexpected status %d", s.URL, resp.StatusCode)
		if resp.StatusCode < 500 {
			return nil, Permanent(err)
		}
		return nil, err
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog.HTTPSource: read body: %w", err)
	}
	return b, nil
}

// DocumentStore is anything that can return the current catalog document,
// such as repo.CatalogRepo.
type DocumentStore interface {
	LatestDocument(ctx context.Context) ([]byte, error)
}

// DocumentSource adapts a DocumentStore to Source.
// A store with no document at all (domain.ErrNotFound) is a permanent failure.
type DocumentSource struct {
	Store DocumentStore
}

// Fetch implements Source.
func (s DocumentSource) Fetch(ctx context.Context) ([]byte, error) {
	b, err := s.Store.LatestDocument(ctx)
	if err != nil {
		err = fmt.Errorf("catalog.DocumentSource: %w", err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, Permanent(err)
		}
		return nil, err
	}
	return b, nil
}
