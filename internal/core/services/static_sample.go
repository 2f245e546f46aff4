package services

import "github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"

// staticSampleRecords is the last fallback tier: a tiny built-in set served
// only so callers can render something when both the content source and the
// snapshot store are unavailable. Capped at 5 records.
func staticSampleRecords() []domain.RawHabitRecord {
	return []domain.RawHabitRecord{
		{
			ID:                      "static-wind-down",
			Category:                domain.GoalBetterSleep,
			EffectivenessScore:      8.9,
			EffectivenessRank:       1,
			IsPrimaryRecommendation: true,
			Difficulty:              "easy",
			TimeMinutes:             15,
			Title:                   "Evening wind-down routine",
			Description:             "Dim the lights and put screens away an hour before bed.",
			Instructions:            []string{"Set a recurring phone alarm one hour before bedtime", "Dim lights, switch screens to night mode or off", "Read or stretch until sleepy"},
			WhyEffective:            "Reducing evening light exposure supports melatonin release; studies report up to 30% faster sleep onset.",
			OptimalTiming:           "60 minutes before bed",
		},
		{
			ID:                      "static-morning-walk",
			Category:                domain.GoalGetMoving,
			EffectivenessScore:      8.4,
			EffectivenessRank:       1,
			IsPrimaryRecommendation: true,
			Difficulty:              "easy",
			TimeMinutes:             20,
			Title:                   "Brisk morning walk",
			Description:             "A 20 minute walk before starting the day.",
			Instructions:            []string{"Lay out shoes the night before", "Walk at a pace where talking is possible but singing is not"},
			WhyEffective:            "Morning daylight plus light cardio improves mood and daytime energy.",
			OptimalTiming:           "Within 2 hours of waking",
		},
		{
			ID:                      "static-gratitude",
			Category:                domain.GoalFeelBetter,
			EffectivenessScore:      7.8,
			EffectivenessRank:       1,
			IsPrimaryRecommendation: true,
			Difficulty:              "trivial",
			TimeMinutes:             5,
			Title:                   "Three good things",
			Description:             "Write down three things that went well today.",
			WhyEffective:            "Gratitude journaling is linked to measurable gains in happiness and lower stress.",
			OptimalTiming:           "Before bed",
		},
		{
			ID:                      "static-breathing",
			Category:                domain.GoalReduceStress,
			EffectivenessScore:      8.1,
			EffectivenessRank:       1,
			IsPrimaryRecommendation: true,
			Difficulty:              "trivial",
			TimeMinutes:             5,
			Title:                   "Box breathing",
			Description:             "Four counts in, hold, out, hold.",
			WhyEffective:            "Slow paced breathing lowers acute stress and anxiety within minutes.",
			OptimalTiming:           "Any stressful moment",
		},
		{
			ID:                      "static-single-task",
			Category:                domain.GoalImproveFocus,
			EffectivenessScore:      7.6,
			EffectivenessRank:       1,
			IsPrimaryRecommendation: true,
			Difficulty:              "moderate",
			TimeMinutes:             25,
			Title:                   "One 25 minute focus block",
			Description:             "Silence notifications and work on a single task.",
			WhyEffective:            "Timeboxed single-tasking improves sustained attention and focus.",
			OptimalTiming:           "Morning, before email",
		},
	}
}
