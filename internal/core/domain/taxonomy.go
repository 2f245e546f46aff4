package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateOfficialID = errors.New("duplicate official goal id")
	ErrDuplicateAlias      = errors.New("alias claimed by more than one mapping")
	ErrAliasShadowsID      = errors.New("alias collides with an official goal id")
	ErrUnreachableMapping  = errors.New("mapping unreachable outside exact id lookup")
)

type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchAlias    MatchType = "alias"
	MatchSemantic MatchType = "semantic"
	MatchCategory MatchType = "category"
	MatchNone     MatchType = "none"
)

// Resolution confidence per tier. Policy constants, descending by match
// strength; a lower tier must never override a higher one.
const (
	ConfidenceExact    = 1.0
	ConfidenceAlias    = 0.9
	ConfidenceSemantic = 0.6
	ConfidenceCategory = 0.5
)

// GoalMapping is one entry of the goal taxonomy: a canonical goal id, the
// alternate spellings that resolve to it, and the broader category used for
// semantic fallback matching.
type GoalMapping struct {
	OfficialID string   `json:"official_id"`
	Aliases    []string `json:"aliases,omitempty"`
	Category   string   `json:"category"`
}

// ValidationResult is the outcome of resolving a free-form goal tag.
// Computed on demand, never persisted.
type ValidationResult struct {
	IsValid      bool      `json:"is_valid"`
	MappedGoalID string    `json:"mapped_goal_id,omitempty"`
	MatchType    MatchType `json:"match_type"`
	Confidence   float64   `json:"confidence"`
}

// Taxonomy is the static goal table plus the synonym groups backing the
// semantic tier. Synonyms maps a category name to the free-form words that
// count as belonging to it.
type Taxonomy struct {
	Mappings []GoalMapping
	Synonyms map[string][]string
}

// Canonical goal identifiers. Closed set; the content source and the
// onboarding flow both speak these ids.
const (
	GoalBetterSleep  = "better_sleep"
	GoalGetMoving    = "get_moving"
	GoalFeelBetter   = "feel_better"
	GoalReduceStress = "reduce_stress"
	GoalImproveFocus = "improve_focus"
)

// DefaultTaxonomy returns the built-in goal table. It must pass Validate
// before the resolver is trusted; the table is checked in tests and at
// startup.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Mappings: []GoalMapping{
			{
				OfficialID: GoalBetterSleep,
				Aliases:    []string{"sleep_better", "improve_sleep", "sleep"},
				Category:   "rest",
			},
			{
				OfficialID: GoalGetMoving,
				Aliases:    []string{"move_more", "exercise", "get_active"},
				Category:   "movement",
			},
			{
				OfficialID: GoalFeelBetter,
				Aliases:    []string{"boost_mood", "be_happier", "improve_mood"},
				Category:   "mood",
			},
			{
				OfficialID: GoalReduceStress,
				Aliases:    []string{"less_stress", "calm_down", "relax_more"},
				Category:   "calm",
			},
			{
				OfficialID: GoalImproveFocus,
				Aliases:    []string{"focus_better", "concentrate", "deep_work"},
				Category:   "focus",
			},
		},
		Synonyms: map[string][]string{
			"rest":     {"rest", "sleeping", "bedtime", "insomnia", "tired"},
			"movement": {"movement", "fitness", "workout", "activity", "sport"},
			"mood":     {"mood", "happiness", "wellbeing", "positivity"},
			"calm":     {"calm", "stress", "anxiety", "relaxation", "unwind"},
			"focus":    {"focus", "attention", "concentration", "productivity"},
		},
	}
}

// NormalizeTag folds a free-form tag into the lookup form shared by every
// resolution tier.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Validate is the offline taxonomy check: duplicate ids, an alias claimed by
// two mappings, an alias shadowing an official id, and mappings that nothing
// but an exact id lookup can ever reach. A taxonomy failing this check is a
// configuration error, not a runtime decision.
func (t *Taxonomy) Validate() error {
	var errs []error

	ids := make(map[string]bool)
	for _, m := range t.Mappings {
		id := NormalizeTag(m.OfficialID)
		if ids[id] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateOfficialID, m.OfficialID))
		}
		ids[id] = true
	}

	aliasOwner := make(map[string]string)
	for _, m := range t.Mappings {
		for _, a := range m.Aliases {
			alias := NormalizeTag(a)
			if ids[alias] && alias != NormalizeTag(m.OfficialID) {
				errs = append(errs, fmt.Errorf("%w: %q (mapping %s)", ErrAliasShadowsID, a, m.OfficialID))
			}
			if owner, claimed := aliasOwner[alias]; claimed && owner != m.OfficialID {
				errs = append(errs, fmt.Errorf("%w: %q (%s vs %s)", ErrDuplicateAlias, a, owner, m.OfficialID))
				continue
			}
			aliasOwner[alias] = m.OfficialID
		}
	}

	for _, m := range t.Mappings {
		if len(m.Aliases) > 0 {
			continue
		}
		if _, ok := t.Synonyms[NormalizeTag(m.Category)]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnreachableMapping, m.OfficialID))
		}
	}

	return errors.Join(errs...)
}
