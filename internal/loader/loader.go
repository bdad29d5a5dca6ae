// Package loader aggregates all registered menu sources into the
// document store. Sources run concurrently; each is isolated behind its
// own retry/fallback wrapper, so one upstream's exhaustion never fails
// the others.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mittagsplan/loader/internal/core/domain"
	"github.com/mittagsplan/loader/internal/core/retrier"
	"github.com/mittagsplan/loader/internal/infra/store"
	"github.com/mittagsplan/loader/internal/source"
)

// Loader runs the registered sources and upserts their items.
type Loader struct {
	sources []source.Source
	docs    store.DocumentStore
	policy  retrier.Policy
	log     *slog.Logger
}

func New(docs store.DocumentStore, policy retrier.Policy, log *slog.Logger, sources ...source.Source) *Loader {
	return &Loader{
		sources: sources,
		docs:    docs,
		policy:  policy,
		log:     log,
	}
}

// Run loads every source concurrently, then upserts the flattened items.
// Upstream failures degrade to empty per-source results; only document
// store failures (local infrastructure) are returned as errors.
func (l *Loader) Run(ctx context.Context) error {
	results := make([][]source.Item, len(l.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range l.sources {
		g.Go(func() error {
			results[i] = l.loadSource(gctx, src)
			return nil
		})
	}
	// Sources never return errors past their fallback; Wait only observes
	// context cancellation.
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for i, items := range results {
		name := l.sources[i].Name()
		for _, it := range items {
			id := it.ID
			if id == "" {
				id = fmt.Sprintf("%s/%s", it.MenuItem.Restaurant, it.MenuItem.Name)
			}
			entry := domain.NewEntry(id, it.MenuItem)
			if err := l.docs.Set(ctx, entry); err != nil {
				return fmt.Errorf("upsert entry %s: %w", id, err)
			}
			itemsUpserted.WithLabelValues(name).Inc()
			total++
		}
		l.log.Info("source loaded", "source", name, "items", len(items))
	}

	l.log.Info("menu load complete", "sources", len(l.sources), "items", total)
	return nil
}

func (l *Loader) loadSource(ctx context.Context, src source.Source) []source.Item {
	log := l.log.With("source", src.Name())
	start := time.Now()
	defer func() {
		loadDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())
	}()

	return retrier.Do(ctx, l.policy, log,
		func(ctx context.Context, attempt int) ([]source.Item, error) {
			log.Debug("loading menu", "attempt", attempt)
			loadAttempts.WithLabelValues(src.Name()).Inc()
			items, err := src.Load(ctx)
			if err != nil {
				loadFailures.WithLabelValues(src.Name()).Inc()
			}
			return items, err
		},
		func() []source.Item {
			sourcesExhausted.WithLabelValues(src.Name()).Inc()
			return nil
		})
}
