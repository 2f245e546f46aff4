package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

var _ domain.SnapshotRepository = (*MemorySnapshotRepository)(nil)

// MemorySnapshotRepository keeps the last saved catalog in process memory.
// Used in tests and as the default when no database is configured.
type MemorySnapshotRepository struct {
	mu      sync.RWMutex
	records []*domain.HabitRecord
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

func (r *MemorySnapshotRepository) Save(ctx context.Context, records []*domain.HabitRecord) error {
	clone := make([]*domain.HabitRecord, len(records))
	copy(clone, records)

	r.mu.Lock()
	r.records = clone
	r.mu.Unlock()
	return nil
}

func (r *MemorySnapshotRepository) Load(ctx context.Context) ([]*domain.HabitRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.records) == 0 {
		return nil, domain.ErrSnapshotEmpty
	}

	clone := make([]*domain.HabitRecord, len(r.records))
	copy(clone, r.records)
	return clone, nil
}
