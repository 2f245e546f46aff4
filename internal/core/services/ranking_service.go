package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

// RankingThresholds are the policy cutoffs for labeling a goal's research
// strength. Configuration, not derived values.
type RankingThresholds struct {
	High float64
	Low  float64
}

var DefaultRankingThresholds = RankingThresholds{High: 8.5, Low: 7.5}

type ResearchStrength string

const (
	ResearchHigh   ResearchStrength = "high"
	ResearchMedium ResearchStrength = "medium"
	ResearchLow    ResearchStrength = "low"
)

// GoalRanking summarizes one goal category: the top ranked habits plus
// aggregate effectiveness over the whole category, not just the top slice.
type GoalRanking struct {
	GoalCategory         string                `json:"goal_category"`
	TopThree             []*domain.HabitRecord `json:"top_three"`
	TotalHabits          int                   `json:"total_habits"`
	AverageEffectiveness float64               `json:"average_effectiveness"`
	ResearchStrength     ResearchStrength      `json:"research_strength"`
}

// RankingService sorts and slices the catalog by the externally assigned
// effectiveness rank and score. RankForGoal orders by rank; GlobalRanking
// orders by raw score. The two keys are deliberately distinct.
type RankingService struct {
	catalog    CatalogProvider
	thresholds RankingThresholds
}

func NewRankingService(catalog CatalogProvider, thresholds RankingThresholds) *RankingService {
	if thresholds == (RankingThresholds{}) {
		thresholds = DefaultRankingThresholds
	}
	return &RankingService{catalog: catalog, thresholds: thresholds}
}

const topSliceSize = 3

func (s *RankingService) RankForGoal(ctx context.Context, goalCategory string) (*GoalRanking, error) {
	catalog, err := s.catalog.Load(ctx, []domain.LanguageCode{domain.PrimaryLanguage})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	matched := catalog.ByGoal(goalCategory)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].EffectivenessRank < matched[j].EffectivenessRank
	})

	top := matched
	if len(top) > topSliceSize {
		top = top[:topSliceSize]
	}

	ranking := &GoalRanking{
		GoalCategory: goalCategory,
		TopThree:     top,
		TotalHabits:  len(matched),
	}

	if len(matched) > 0 {
		var sum float64
		for _, r := range matched {
			sum += r.EffectivenessScore
		}
		ranking.AverageEffectiveness = roundToOneDecimal(sum / float64(len(matched)))
	}
	ranking.ResearchStrength = s.strengthFor(ranking.AverageEffectiveness)

	return ranking, nil
}

// GlobalRanking sorts the whole catalog descending by effectiveness score and
// truncates to limit. limit <= 0 returns the full ordering.
func (s *RankingService) GlobalRanking(ctx context.Context, limit int) ([]*domain.HabitRecord, error) {
	catalog, err := s.catalog.Load(ctx, []domain.LanguageCode{domain.PrimaryLanguage})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	ranked := make([]*domain.HabitRecord, len(catalog.Records))
	copy(ranked, catalog.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectivenessScore > ranked[j].EffectivenessScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *RankingService) strengthFor(average float64) ResearchStrength {
	switch {
	case average >= s.thresholds.High:
		return ResearchHigh
	case average < s.thresholds.Low:
		return ResearchLow
	default:
		return ResearchMedium
	}
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
