package repository_test

import (
	"context"
	"testing"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotRecord(id string) *domain.HabitRecord {
	return &domain.HabitRecord{
		ID:                 id,
		GoalCategory:       domain.GoalBetterSleep,
		EffectivenessScore: 8.5,
		EffectivenessRank:  1,
		Difficulty:         domain.DifficultyEasy,
		TimeMinutes:        10,
		Translations: map[domain.LanguageCode]domain.Translation{
			domain.LangEN: {Title: "Habit " + id},
		},
	}
}

func TestMemorySnapshotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty repository reports a typed miss", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSnapshotEmpty)
	})

	t.Run("Save then Load round-trips", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		require.NoError(t, repo.Save(ctx, []*domain.HabitRecord{snapshotRecord("a"), snapshotRecord("b")}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("Save replaces the previous snapshot wholesale", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		require.NoError(t, repo.Save(ctx, []*domain.HabitRecord{snapshotRecord("a"), snapshotRecord("b")}))
		require.NoError(t, repo.Save(ctx, []*domain.HabitRecord{snapshotRecord("c")}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})

	t.Run("Saving an empty slice clears the snapshot", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		require.NoError(t, repo.Save(ctx, []*domain.HabitRecord{snapshotRecord("a")}))
		require.NoError(t, repo.Save(ctx, nil))

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSnapshotEmpty)
	})

	t.Run("Caller mutation after Load does not leak into the store", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		require.NoError(t, repo.Save(ctx, []*domain.HabitRecord{snapshotRecord("a")}))

		first, err := repo.Load(ctx)
		require.NoError(t, err)
		first[0] = snapshotRecord("mutated")

		second, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a", second[0].ID)
	})
}
