package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyLoader struct {
	mu      sync.Mutex
	loads   int
	clears  int
	catalog *domain.Catalog
}

func (s *spyLoader) Load(ctx context.Context, langs []domain.LanguageCode) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.catalog, nil
}

func (s *spyLoader) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *spyLoader) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads, s.clears
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRefreshWorker(t *testing.T) {
	healthy := &domain.Catalog{Meta: domain.CatalogMeta{Fallback: domain.FallbackNone}}

	t.Run("Enqueued job triggers a load", func(t *testing.T) {
		loader := &spyLoader{catalog: healthy}
		worker := workers.NewRefreshWorker(loader, []domain.LanguageCode{domain.LangEN}, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		worker.Start(ctx)

		worker.Enqueue(workers.RefreshJob{Reason: "test"})

		waitFor(t, func() bool { loads, _ := loader.counts(); return loads >= 1 })
		_, clears := loader.counts()
		assert.Zero(t, clears)
	})

	t.Run("ClearFirst invalidates before reloading", func(t *testing.T) {
		loader := &spyLoader{catalog: healthy}
		worker := workers.NewRefreshWorker(loader, []domain.LanguageCode{domain.LangEN}, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		worker.Start(ctx)

		worker.Enqueue(workers.RefreshJob{Reason: "admin refresh", ClearFirst: true})

		waitFor(t, func() bool { _, clears := loader.counts(); return clears == 1 })
		loads, _ := loader.counts()
		require.GreaterOrEqual(t, loads, 1)
	})

	t.Run("Ticker drives scheduled reloads", func(t *testing.T) {
		loader := &spyLoader{catalog: healthy}
		worker := workers.NewRefreshWorker(loader, []domain.LanguageCode{domain.LangEN}, 20*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		worker.Start(ctx)

		waitFor(t, func() bool { loads, _ := loader.counts(); return loads >= 2 })
	})

	t.Run("Context cancellation stops the loop", func(t *testing.T) {
		loader := &spyLoader{catalog: healthy}
		worker := workers.NewRefreshWorker(loader, []domain.LanguageCode{domain.LangEN}, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		worker.Start(ctx)

		waitFor(t, func() bool { loads, _ := loader.counts(); return loads >= 1 })
		cancel()
		time.Sleep(50 * time.Millisecond)

		before, _ := loader.counts()
		time.Sleep(50 * time.Millisecond)
		after, _ := loader.counts()
		assert.Equal(t, before, after)
	})
}
