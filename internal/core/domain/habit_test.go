package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func validRecord() *domain.HabitRecord {
	return &domain.HabitRecord{
		ID:                 "hab-1",
		GoalCategory:       domain.GoalBetterSleep,
		EffectivenessScore: 8.7,
		EffectivenessRank:  1,
		Difficulty:         domain.DifficultyEasy,
		TimeMinutes:        10,
		Translations: map[domain.LanguageCode]domain.Translation{
			domain.LangEN: {Title: "Evening wind-down", Description: "Dim lights an hour before bed"},
		},
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	cases := []struct {
		raw   string
		want  domain.Difficulty
		known bool
	}{
		{"trivial", domain.DifficultyTrivial, true},
		{"easy", domain.DifficultyEasy, true},
		{"beginner", domain.DifficultyEasy, true},
		{"moderate", domain.DifficultyModerate, true},
		{"challenging", domain.DifficultyIntermediate, true},
		{"intermediate", domain.DifficultyIntermediate, true},
		{"advanced", domain.DifficultyAdvanced, true},
		{"  Easy ", domain.DifficultyEasy, true},
		{"ultra-hardcore", domain.DifficultyEasy, false},
		{"", domain.DifficultyEasy, false},
	}

	for _, c := range cases {
		got, known := domain.NormalizeDifficulty(c.raw)
		assert.Equal(t, c.want, got, "raw=%q", c.raw)
		assert.Equal(t, c.known, known, "raw=%q", c.raw)
	}
}

func TestSkillLevel_Allows(t *testing.T) {
	t.Run("Beginner: only trivial and easy pass", func(t *testing.T) {
		assert.True(t, domain.SkillBeginner.Allows(domain.DifficultyTrivial))
		assert.True(t, domain.SkillBeginner.Allows(domain.DifficultyEasy))
		assert.False(t, domain.SkillBeginner.Allows(domain.DifficultyModerate))
		assert.False(t, domain.SkillBeginner.Allows(domain.DifficultyAdvanced))
	})

	t.Run("Intermediate: up to intermediate passes", func(t *testing.T) {
		assert.True(t, domain.SkillIntermediate.Allows(domain.DifficultyModerate))
		assert.True(t, domain.SkillIntermediate.Allows(domain.DifficultyIntermediate))
		assert.False(t, domain.SkillIntermediate.Allows(domain.DifficultyAdvanced))
	})

	t.Run("Advanced: everything passes", func(t *testing.T) {
		for _, d := range []domain.Difficulty{
			domain.DifficultyTrivial, domain.DifficultyEasy, domain.DifficultyModerate,
			domain.DifficultyIntermediate, domain.DifficultyAdvanced,
		} {
			assert.True(t, domain.SkillAdvanced.Allows(d), "difficulty=%s", d)
		}
	})

	t.Run("Easy entries always pass regardless of level", func(t *testing.T) {
		assert.True(t, domain.SkillBeginner.Allows(domain.DifficultyEasy))
		assert.True(t, domain.SkillIntermediate.Allows(domain.DifficultyTrivial))
	})
}

func TestParseSkillLevel(t *testing.T) {
	lvl, err := domain.ParseSkillLevel(" Intermediate ")
	assert.NoError(t, err)
	assert.Equal(t, domain.SkillIntermediate, lvl)

	lvl, err = domain.ParseSkillLevel("")
	assert.NoError(t, err)
	assert.Equal(t, domain.SkillBeginner, lvl)

	_, err = domain.ParseSkillLevel("ninja")
	assert.ErrorIs(t, err, domain.ErrInvalidSkillLevel)
}

func TestHabitRecord_Translation(t *testing.T) {
	rec := validRecord()
	rec.Translations[domain.LangIT] = domain.Translation{Title: "Rilassamento serale"}

	t.Run("Requested language is returned when present", func(t *testing.T) {
		tr, hit := rec.Translation(domain.LangIT)
		assert.True(t, hit)
		assert.Equal(t, "Rilassamento serale", tr.Title)
	})

	t.Run("Missing language falls back to primary", func(t *testing.T) {
		tr, hit := rec.Translation(domain.LangDE)
		assert.False(t, hit)
		assert.Equal(t, "Evening wind-down", tr.Title)
	})
}

func TestHabitRecord_Validate(t *testing.T) {
	t.Run("Success: valid record", func(t *testing.T) {
		assert.NoError(t, validRecord().Validate())
	})

	t.Run("Fail: empty id", func(t *testing.T) {
		rec := validRecord()
		rec.ID = "  "
		assert.ErrorIs(t, rec.Validate(), domain.ErrRecordIDEmpty)
	})

	t.Run("Fail: score out of range", func(t *testing.T) {
		rec := validRecord()
		rec.EffectivenessScore = 11
		assert.ErrorIs(t, rec.Validate(), domain.ErrRecordBadScore)
	})

	t.Run("Fail: rank below 1", func(t *testing.T) {
		rec := validRecord()
		rec.EffectivenessRank = 0
		assert.ErrorIs(t, rec.Validate(), domain.ErrRecordBadRank)
	})

	t.Run("Fail: missing primary translation", func(t *testing.T) {
		rec := validRecord()
		rec.Translations = map[domain.LanguageCode]domain.Translation{
			domain.LangES: {Title: "Relajación"},
		}
		assert.ErrorIs(t, rec.Validate(), domain.ErrRecordNoTranslation)
	})
}
