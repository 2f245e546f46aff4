package domain

import "errors"

var (
	ErrNoGoalsRequested = errors.New("at least one goal category is required")
)

// RecommendationRequest is the transient input of the recommendation
// pipeline. GoalCategories accepts free-form tags; they are resolved through
// the taxonomy before matching. TimeAvailableMinutes <= 0 means no time
// constraint.
type RecommendationRequest struct {
	GoalCategories       []string       `json:"goal_categories"`
	SkillLevel           SkillLevel     `json:"skill_level,omitempty"`
	TimeAvailableMinutes int            `json:"time_available_minutes,omitempty"`
	CurrentHabits        []string       `json:"current_habits,omitempty"`
	Languages            []LanguageCode `json:"languages,omitempty"`
}

// RecommendationResponse carries the bounded primary set plus per-goal
// alternates. Warnings surface goals whose candidate pool came up empty, so
// a partial result is distinguishable from a broken pipeline.
type RecommendationResponse struct {
	RequestID               string                    `json:"request_id"`
	PrimaryRecommendations  []*HabitRecord            `json:"primary_recommendations"`
	AlternativeOptions      map[string][]*HabitRecord `json:"alternative_options,omitempty"`
	Reasoning               string                    `json:"reasoning"`
	ExpectedBenefits        []string                  `json:"expected_benefits,omitempty"`
	EstimatedTimeCommitment int                       `json:"estimated_time_commitment"`
	Warnings                []string                  `json:"warnings,omitempty"`
	CatalogFallback         FallbackLevel             `json:"catalog_fallback,omitempty"`
}
