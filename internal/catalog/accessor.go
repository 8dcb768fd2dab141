package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

// maxFetchRetries is the number of retries after the first fetch attempt.
const maxFetchRetries = 2

// defaultLoadTimeout bounds one shared load, retries included.
const defaultLoadTimeout = 30 * time.Second

// Accessor loads the catalog from a Source on first use and caches it for the
// life of the process. There is no refresh: a new catalog needs a new process.
//
// A failed load is not cached, so the next call tries again.
type Accessor struct {
	src         Source
	log         *slog.Logger
	backoff     func() retry.Backoff
	loadTimeout time.Duration

	group singleflight.Group

	mu  sync.RWMutex
	cat *Catalog
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithBackoff replaces the retry schedule used between fetch attempts.
// The function is called once per load so each load starts a fresh schedule.
func WithBackoff(b func() retry.Backoff) Option {
	return func(a *Accessor) { a.backoff = b }
}

// WithLoadTimeout bounds one shared load, retries included.
func WithLoadTimeout(d time.Duration) Option {
	return func(a *Accessor) { a.loadTimeout = d }
}

// NewAccessor returns an Accessor that reads from src.
// Fetches are attempted up to 3 times with exponential backoff.
func NewAccessor(src Source, log *slog.Logger, opts ...Option) *Accessor {
	a := &Accessor{
		src:         src,
		log:         log,
		loadTimeout: defaultLoadTimeout,
		backoff:     func() retry.Backoff {
			return retry.WithMaxRetries(maxFetchRetries, retry.NewExponential(250*time.Millisecond))
		},
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Ready reports whether the catalog has been loaded.
func (a *Accessor) Ready() bool {
	return a.loaded() != nil
}

// Load returns the cached catalog, loading it first if needed.
// Concurrent callers share one in-flight load. The shared load is detached
// from the caller's context and bounded by its own timeout, so one caller
// going away does not fail the others; that caller alone gets ctx.Err().
func (a *Accessor) Load(ctx context.Context) (*Catalog, error) {
	if c := a.loaded(); c != nil {
		return c, nil
	}
	ch := a.group.DoChan("catalog", func() (any, error) {
		if c := a.loaded(); c != nil {
			return c, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.loadTimeout)
		defer cancel()
		c, err := a.load(loadCtx)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.cat = c
		a.mu.Unlock()
		return c, nil
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("catalog.Accessor.Load: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	}
}

func (a *Accessor) loaded() *Catalog {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cat
}

func (a *Accessor) load(ctx context.Context) (*Catalog, error) {
	var (
		doc     []byte
		attempt int
	)
	err := retry.Do(ctx, a.backoff(), func(ctx context.Context) error {
		attempt++
		b, err := a.src.Fetch(ctx)
		if err != nil {
			if IsPermanent(err) {
				return err
			}
			a.log.WarnContext(ctx, "catalog fetch failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		doc = b
		return nil
	})
	if err != nil {
		a.log.ErrorContext(ctx, "catalog unavailable", "attempts", attempt, "error", err)
		return nil, fmt.Errorf("catalog.Accessor.Load: %w: %w", domain.ErrCatalogUnavailable, err)
	}

	c, err := Parse(doc)
	if err != nil {
		a.log.ErrorContext(ctx, "catalog document rejected", "error", err)
		return nil, fmt.Errorf("catalog.Accessor.Load: %w", err)
	}

	if c.DayRatesDefaulted() {
		rates := c.DayRates()
		a.log.WarnContext(ctx, "catalog day rates incomplete; using fallback defaults",
			"solo", rates.Solo,
			"additional_hunter", rates.AdditionalHunter,
			"non_hunter", rates.NonHunter,
		)
	}
	a.log.InfoContext(ctx, "catalog loaded",
		"offerings", len(c.offerings),
		"species", len(c.species),
		"attempts", attempt,
	)
	return c, nil
}
