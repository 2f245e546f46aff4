package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	catalog *domain.Catalog
	err     error
}

func (s stubCatalog) Load(ctx context.Context, langs []domain.LanguageCode) (*domain.Catalog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}

func record(id, goal string, score float64, rank, minutes int, difficulty domain.Difficulty) *domain.HabitRecord {
	return &domain.HabitRecord{
		ID:                 id,
		GoalCategory:       goal,
		EffectivenessScore: score,
		EffectivenessRank:  rank,
		Difficulty:         difficulty,
		TimeMinutes:        minutes,
		Translations: map[domain.LanguageCode]domain.Translation{
			domain.LangEN: {Title: "Habit " + id, ResearchSummary: "Generic summary for " + id},
		},
	}
}

func catalogOf(records ...*domain.HabitRecord) *domain.Catalog {
	return &domain.Catalog{
		Records: records,
		Meta:    domain.CatalogMeta{Fallback: domain.FallbackNone},
	}
}

func TestRankingService_RankForGoal(t *testing.T) {
	ctx := context.Background()

	sleepCatalog := catalogOf(
		record("s3", domain.GoalBetterSleep, 7.1, 3, 10, domain.DifficultyEasy),
		record("s1", domain.GoalBetterSleep, 9.2, 1, 15, domain.DifficultyEasy),
		record("s4", domain.GoalBetterSleep, 6.8, 4, 5, domain.DifficultyEasy),
		record("s2", domain.GoalBetterSleep, 8.0, 2, 20, domain.DifficultyEasy),
		record("m1", domain.GoalGetMoving, 9.9, 1, 30, domain.DifficultyModerate),
	)

	svc := services.NewRankingService(stubCatalog{catalog: sleepCatalog}, services.DefaultRankingThresholds)

	t.Run("Top three sorted ascending by rank, same category only", func(t *testing.T) {
		ranking, err := svc.RankForGoal(ctx, domain.GoalBetterSleep)

		require.NoError(t, err)
		require.Len(t, ranking.TopThree, 3)
		assert.Equal(t, "s1", ranking.TopThree[0].ID)
		assert.Equal(t, "s2", ranking.TopThree[1].ID)
		assert.Equal(t, "s3", ranking.TopThree[2].ID)
		for _, r := range ranking.TopThree {
			assert.Equal(t, domain.GoalBetterSleep, r.GoalCategory)
		}
		assert.Equal(t, 4, ranking.TotalHabits)
	})

	t.Run("Average covers the whole category, rounded to one decimal", func(t *testing.T) {
		ranking, err := svc.RankForGoal(ctx, domain.GoalBetterSleep)

		require.NoError(t, err)
		// (9.2 + 8.0 + 7.1 + 6.8) / 4 = 7.775 -> 7.8
		assert.Equal(t, 7.8, ranking.AverageEffectiveness)
		assert.Equal(t, services.ResearchMedium, ranking.ResearchStrength)
	})

	t.Run("Research strength follows the policy thresholds", func(t *testing.T) {
		high := catalogOf(record("a", domain.GoalBetterSleep, 9.0, 1, 5, domain.DifficultyEasy))
		low := catalogOf(record("b", domain.GoalBetterSleep, 6.0, 1, 5, domain.DifficultyEasy))

		hr, err := services.NewRankingService(stubCatalog{catalog: high}, services.DefaultRankingThresholds).RankForGoal(ctx, domain.GoalBetterSleep)
		require.NoError(t, err)
		assert.Equal(t, services.ResearchHigh, hr.ResearchStrength)

		lr, err := services.NewRankingService(stubCatalog{catalog: low}, services.DefaultRankingThresholds).RankForGoal(ctx, domain.GoalBetterSleep)
		require.NoError(t, err)
		assert.Equal(t, services.ResearchLow, lr.ResearchStrength)
	})

	t.Run("Empty category: zero totals, no error", func(t *testing.T) {
		ranking, err := svc.RankForGoal(ctx, domain.GoalImproveFocus)

		require.NoError(t, err)
		assert.Empty(t, ranking.TopThree)
		assert.Zero(t, ranking.TotalHabits)
		assert.Zero(t, ranking.AverageEffectiveness)
	})

	t.Run("Fail: catalog unavailable is typed", func(t *testing.T) {
		broken := services.NewRankingService(stubCatalog{err: errors.New("down")}, services.DefaultRankingThresholds)

		_, err := broken.RankForGoal(ctx, domain.GoalBetterSleep)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestRankingService_GlobalRanking(t *testing.T) {
	ctx := context.Background()

	// The category-best habit (rank 1) has a lower raw score than a habit in
	// another category: global and per-goal orderings must diverge.
	catalog := catalogOf(
		record("sleep-best", domain.GoalBetterSleep, 7.9, 1, 10, domain.DifficultyEasy),
		record("move-best", domain.GoalGetMoving, 9.5, 1, 30, domain.DifficultyModerate),
		record("sleep-2", domain.GoalBetterSleep, 7.0, 2, 10, domain.DifficultyEasy),
	)
	svc := services.NewRankingService(stubCatalog{catalog: catalog}, services.DefaultRankingThresholds)

	t.Run("Orders by raw score descending and truncates", func(t *testing.T) {
		ranked, err := svc.GlobalRanking(ctx, 2)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, "move-best", ranked[0].ID)
		assert.Equal(t, "sleep-best", ranked[1].ID)
	})

	t.Run("Global winner differs from category winner when scores diverge", func(t *testing.T) {
		global, err := svc.GlobalRanking(ctx, 1)
		require.NoError(t, err)

		perGoal, err := svc.RankForGoal(ctx, domain.GoalBetterSleep)
		require.NoError(t, err)

		require.NotEmpty(t, perGoal.TopThree)
		assert.NotEqual(t, perGoal.TopThree[0].ID, global[0].ID)
	})

	t.Run("Does not mutate catalog order", func(t *testing.T) {
		_, err := svc.GlobalRanking(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, "sleep-best", catalog.Records[0].ID)
	})
}
