package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

// RecommendationPolicy holds the product policy constants of the pipeline.
// PrimarySlots is fixed at 3 as a product decision (always show exactly three
// habits when any goal is selected); it is not derived from the request.
type RecommendationPolicy struct {
	PrimarySlots      int
	AlternatesPerGoal int
}

var DefaultRecommendationPolicy = RecommendationPolicy{
	PrimarySlots:      3,
	AlternatesPerGoal: 2,
}

// RecommendationService runs the matching and scoring pipeline: resolve the
// requested goals, build filtered candidate pools per goal, distribute the
// fixed primary slots across them, and summarize the selection.
type RecommendationService struct {
	catalog  CatalogProvider
	taxonomy *TaxonomyService
	policy   RecommendationPolicy
}

func NewRecommendationService(catalog CatalogProvider, taxonomy *TaxonomyService, policy RecommendationPolicy) *RecommendationService {
	if policy.PrimarySlots <= 0 {
		policy = DefaultRecommendationPolicy
	}
	return &RecommendationService{catalog: catalog, taxonomy: taxonomy, policy: policy}
}

func (s *RecommendationService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error) {
	if len(req.GoalCategories) == 0 {
		return nil, domain.ErrNoGoalsRequested
	}

	var warnings []string

	goals := make([]string, 0, len(req.GoalCategories))
	seenGoal := make(map[string]bool)
	for _, tag := range req.GoalCategories {
		res := s.taxonomy.Resolve(tag)
		if !res.IsValid {
			warnings = append(warnings, fmt.Sprintf("goal %q is not recognized and was skipped", tag))
			continue
		}
		if seenGoal[res.MappedGoalID] {
			continue
		}
		seenGoal[res.MappedGoalID] = true
		goals = append(goals, res.MappedGoalID)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("%w: none of the requested goals resolved", domain.ErrNoGoalsRequested)
	}

	catalog, err := s.catalog.Load(ctx, req.Languages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	current := make(map[string]bool, len(req.CurrentHabits))
	for _, id := range req.CurrentHabits {
		current[id] = true
	}

	pools := make(map[string][]*domain.HabitRecord, len(goals))
	for _, goal := range goals {
		pools[goal] = s.candidatePool(catalog, goal, current, req)
	}

	slots := distributeSlots(s.policy.PrimarySlots, len(goals))

	var primary []*domain.HabitRecord
	alternates := make(map[string][]*domain.HabitRecord)

	for i, goal := range goals {
		pool := pools[goal]
		want := slots[i]

		take := want
		if take > len(pool) {
			take = len(pool)
		}
		primary = append(primary, pool[:take]...)

		rest := pool[take:]
		if len(rest) > s.policy.AlternatesPerGoal {
			rest = rest[:s.policy.AlternatesPerGoal]
		}
		if len(rest) > 0 {
			alternates[goal] = rest
		}

		if len(pool) == 0 {
			warnings = append(warnings, fmt.Sprintf("no habits matched goal %s with the current constraints", goal))
		} else if take < want {
			warnings = append(warnings, fmt.Sprintf("goal %s filled only %d of %d slots", goal, take, want))
		}
	}

	totalMinutes := 0
	summaries := make([]string, 0, len(primary))
	for _, rec := range primary {
		totalMinutes += rec.TimeMinutes
		if tr, ok := rec.Translations[domain.PrimaryLanguage]; ok {
			summaries = append(summaries, tr.ResearchSummary)
		}
	}

	return &domain.RecommendationResponse{
		RequestID:               uuid.NewString(),
		PrimaryRecommendations:  primary,
		AlternativeOptions:      alternates,
		Reasoning:               s.composeReasoning(goals, slots, primary, req),
		ExpectedBenefits:        extractBenefits(summaries),
		EstimatedTimeCommitment: totalMinutes,
		Warnings:                warnings,
		CatalogFallback:         catalog.Meta.Fallback,
	}, nil
}

// candidatePool filters a goal's records by ownership, skill level, and time
// budget, sorted ascending by effectiveness rank. An empty skill level and a
// non-positive time budget disable the respective filter.
func (s *RecommendationService) candidatePool(catalog *domain.Catalog, goal string, current map[string]bool, req domain.RecommendationRequest) []*domain.HabitRecord {
	var pool []*domain.HabitRecord
	for _, rec := range catalog.ByGoal(goal) {
		if current[rec.ID] {
			continue
		}
		if req.SkillLevel != "" && !req.SkillLevel.Allows(rec.Difficulty) {
			continue
		}
		if req.TimeAvailableMinutes > 0 && rec.TimeMinutes > req.TimeAvailableMinutes {
			continue
		}
		pool = append(pool, rec)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].EffectivenessRank < pool[j].EffectivenessRank
	})
	return pool
}

// distributeSlots spreads total primary slots across n goals: an even split
// with the remainder assigned to the first goals in request order. Yields
// [3], [2 1], and [1 1 1] for one, two, and three goals.
func distributeSlots(total, n int) []int {
	if n <= 0 {
		return nil
	}

	slots := make([]int, n)
	base := total / n
	rem := total % n
	for i := range slots {
		slots[i] = base
		if i < rem {
			slots[i]++
		}
	}
	return slots
}

func (s *RecommendationService) composeReasoning(goals []string, slots []int, primary []*domain.HabitRecord, req domain.RecommendationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Selected %d habit(s) across %d goal(s), splitting %d primary slots %v in request order.",
		len(primary), len(goals), s.policy.PrimarySlots, slots)

	if len(primary) > 0 {
		var sum float64
		for _, rec := range primary {
			sum += rec.EffectivenessScore
		}
		fmt.Fprintf(&b, " Average effectiveness of the selection is %.1f/10.", sum/float64(len(primary)))
	}

	if req.SkillLevel != "" {
		fmt.Fprintf(&b, " Candidates were limited to a %s-friendly difficulty.", req.SkillLevel)
	}
	if req.TimeAvailableMinutes > 0 {
		fmt.Fprintf(&b, " Only habits taking %d minutes or less were considered.", req.TimeAvailableMinutes)
	}

	return b.String()
}
