package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordIDEmpty       = errors.New("habit record id cannot be empty")
	ErrRecordCategoryEmpty = errors.New("habit record category cannot be empty")
	ErrRecordBadScore      = errors.New("effectiveness score must be between 0 and 10")
	ErrRecordBadRank       = errors.New("effectiveness rank must be >= 1")
	ErrRecordBadTime       = errors.New("time minutes cannot be negative")
	ErrRecordNoTranslation = errors.New("habit record must carry at least the primary translation")
	ErrInvalidSkillLevel   = errors.New("invalid skill level (must be beginner, intermediate, or advanced)")
)

type LanguageCode string

const (
	LangEN LanguageCode = "en"
	LangES LanguageCode = "es"
	LangFR LanguageCode = "fr"
	LangDE LanguageCode = "de"
	LangIT LanguageCode = "it"
)

// PrimaryLanguage is the language every catalog record is guaranteed to carry.
const PrimaryLanguage = LangEN

var SupportedLanguages = []LanguageCode{LangEN, LangES, LangFR, LangDE, LangIT}

func IsSupportedLanguage(lang LanguageCode) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyTrivial      Difficulty = "trivial"
	DifficultyEasy         Difficulty = "easy"
	DifficultyModerate     Difficulty = "moderate"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// difficultyOrder gives the closed set a total order, used by the skill filter.
var difficultyOrder = map[Difficulty]int{
	DifficultyTrivial:      0,
	DifficultyEasy:         1,
	DifficultyModerate:     2,
	DifficultyIntermediate: 3,
	DifficultyAdvanced:     4,
}

// NormalizeDifficulty maps the content source vocabulary onto the canonical
// set. The second return reports whether the raw value was recognized; unknown
// values default to easy and the caller is expected to log them as a
// data-quality warning rather than drop the record.
func NormalizeDifficulty(raw string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trivial":
		return DifficultyTrivial, true
	case "easy", "beginner":
		return DifficultyEasy, true
	case "moderate":
		return DifficultyModerate, true
	case "challenging", "intermediate":
		return DifficultyIntermediate, true
	case "advanced", "hard":
		return DifficultyAdvanced, true
	default:
		return DifficultyEasy, false
	}
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

func ParseSkillLevel(raw string) (SkillLevel, error) {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case SkillBeginner:
		return SkillBeginner, nil
	case SkillIntermediate:
		return SkillIntermediate, nil
	case SkillAdvanced:
		return SkillAdvanced, nil
	case "":
		return SkillBeginner, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSkillLevel, raw)
	}
}

// ceiling is the hardest difficulty a skill level is offered. Entries at or
// below the easy tier always pass regardless of level.
func (s SkillLevel) ceiling() int {
	switch s {
	case SkillIntermediate:
		return difficultyOrder[DifficultyIntermediate]
	case SkillAdvanced:
		return difficultyOrder[DifficultyAdvanced]
	default:
		return difficultyOrder[DifficultyEasy]
	}
}

func (s SkillLevel) Allows(d Difficulty) bool {
	ord, ok := difficultyOrder[d]
	if !ok {
		return false
	}
	if ord <= difficultyOrder[DifficultyEasy] {
		return true
	}
	return ord <= s.ceiling()
}

// Translation is the per-language content block of a habit record.
type Translation struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ResearchSummary string   `json:"research_summary"`
	Instructions    []string `json:"instructions,omitempty"`
	Sources         []string `json:"sources,omitempty"`
	OptimalTiming   string   `json:"optimal_timing,omitempty"`
	ProgressionTips []string `json:"progression_tips,omitempty"`
	CategoryLabel   string   `json:"category_label,omitempty"`
}

// HabitRecord is a normalized catalog entry. Records are created by the remote
// content source and are read-only here; a refresh replaces them wholesale.
type HabitRecord struct {
	ID                      string                       `json:"id"`
	GoalCategory            string                       `json:"goal_category"`
	EffectivenessScore      float64                      `json:"effectiveness_score"`
	EffectivenessRank       int                          `json:"effectiveness_rank"`
	IsPrimaryRecommendation bool                         `json:"is_primary_recommendation"`
	Difficulty              Difficulty                   `json:"difficulty"`
	TimeMinutes             int                          `json:"time_minutes"`
	GoalTags                []string                     `json:"goal_tags,omitempty"`
	Translations            map[LanguageCode]Translation `json:"translations"`
}

// Translation returns the block for lang, falling back to the primary
// language. The second return reports whether the requested language was hit.
func (h *HabitRecord) Translation(lang LanguageCode) (Translation, bool) {
	if t, ok := h.Translations[lang]; ok {
		return t, true
	}
	return h.Translations[PrimaryLanguage], false
}

func (h *HabitRecord) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return ErrRecordIDEmpty
	}
	if strings.TrimSpace(h.GoalCategory) == "" {
		return fmt.Errorf("%w (record %s)", ErrRecordCategoryEmpty, h.ID)
	}
	if h.EffectivenessScore < 0 || h.EffectivenessScore > 10 {
		return fmt.Errorf("%w (record %s: %.1f)", ErrRecordBadScore, h.ID, h.EffectivenessScore)
	}
	if h.EffectivenessRank < 1 {
		return fmt.Errorf("%w (record %s: %d)", ErrRecordBadRank, h.ID, h.EffectivenessRank)
	}
	if h.TimeMinutes < 0 {
		return fmt.Errorf("%w (record %s)", ErrRecordBadTime, h.ID)
	}
	if _, ok := h.Translations[PrimaryLanguage]; !ok {
		return fmt.Errorf("%w (record %s)", ErrRecordNoTranslation, h.ID)
	}
	return nil
}
