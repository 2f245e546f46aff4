package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

// CatalogLoader is the slice of the catalog service the worker needs.
type CatalogLoader interface {
	Load(ctx context.Context, langs []domain.LanguageCode) (*domain.Catalog, error)
	ClearCache()
}

type RefreshJob struct {
	Reason     string
	ClearFirst bool
}

// RefreshWorker keeps the catalog cache warm: it re-loads the configured
// language set on a fixed interval and on demand (after an admin refresh),
// so interactive requests rarely pay the fetch latency and the persisted
// snapshot stays fresh.
type RefreshWorker struct {
	catalog  CatalogLoader
	langs    []domain.LanguageCode
	interval time.Duration
	jobs     chan RefreshJob
}

func NewRefreshWorker(catalog CatalogLoader, langs []domain.LanguageCode, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		catalog:  catalog,
		langs:    langs,
		interval: interval,
		jobs:     make(chan RefreshJob, 16),
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Catalog refresh worker started in background...")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ticker.C:
				w.processJob(ctx, RefreshJob{Reason: "scheduled warmup"})
			case <-ctx.Done():
				log.Println("Catalog refresh worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue schedules a refresh without blocking the caller. A full queue drops
// the job; the next tick covers it.
func (w *RefreshWorker) Enqueue(job RefreshJob) {
	select {
	case w.jobs <- job:
	default:
		log.Printf("Refresh worker queue full, dropping job (%s)", job.Reason)
	}
}

func (w *RefreshWorker) processJob(ctx context.Context, job RefreshJob) {
	if job.ClearFirst {
		w.catalog.ClearCache()
	}

	catalog, err := w.catalog.Load(ctx, w.langs)
	if err != nil {
		log.Printf("Refresh worker failed to load catalog (%s): %v", job.Reason, err)
		return
	}

	if catalog.Meta.Fallback != domain.FallbackNone {
		log.Printf("Refresh worker loaded degraded catalog (%s): fallback=%s", job.Reason, catalog.Meta.Fallback)
		return
	}

	log.Printf("Catalog refreshed (%s): %d records, languages %v", job.Reason, len(catalog.Records), catalog.Meta.Languages)
}
