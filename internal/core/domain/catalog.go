package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrCatalogUnavailable signals that the catalog could not be obtained at
	// all. Callers must be able to tell this apart from a valid-but-empty
	// result set.
	ErrCatalogUnavailable = errors.New("habit catalog unavailable")

	ErrContentFetch    = errors.New("content source fetch failed")
	ErrContentBadShape = errors.New("content source returned an unexpected shape")
	ErrSnapshotEmpty   = errors.New("no catalog snapshot stored")
)

// FallbackLevel records which degraded mode, if any, produced a catalog.
type FallbackLevel string

const (
	FallbackNone        FallbackLevel = "none"
	FallbackPrimaryOnly FallbackLevel = "primary_only"
	FallbackSnapshot    FallbackLevel = "snapshot"
	FallbackStatic      FallbackLevel = "static"
)

// CatalogMeta makes degraded modes observable: callers and tests can assert
// on the fallback level and the data-quality warnings instead of guessing
// from the record set.
type CatalogMeta struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Languages []LanguageCode `json:"languages"`
	Fallback  FallbackLevel  `json:"fallback"`
	FromCache bool           `json:"from_cache"`
	Warnings  []string       `json:"warnings,omitempty"`
}

type Catalog struct {
	Records []*HabitRecord `json:"records"`
	Meta    CatalogMeta    `json:"meta"`
}

// ByGoal returns the records belonging to a goal category, in source order.
func (c *Catalog) ByGoal(goal string) []*HabitRecord {
	goal = NormalizeTag(goal)
	var out []*HabitRecord
	for _, r := range c.Records {
		if NormalizeTag(r.GoalCategory) == goal {
			out = append(out, r)
		}
	}
	return out
}

// RawHabitRecord is the wire shape of one entry in a per-language content
// document (GET /habits/<dataset>-<language>.json).
type RawHabitRecord struct {
	ID                      string   `json:"id"`
	Category                string   `json:"category"`
	EffectivenessScore      float64  `json:"effectivenessScore"`
	EffectivenessRank       int      `json:"effectivenessRank"`
	IsPrimaryRecommendation bool     `json:"isPrimaryRecommendation"`
	Difficulty              string   `json:"difficulty"`
	TimeMinutes             int      `json:"timeMinutes"`
	GoalTags                []string `json:"goalTags,omitempty"`
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Instructions            []string `json:"instructions,omitempty"`
	WhyEffective            string   `json:"whyEffective"`
	Sources                 []string `json:"sources,omitempty"`
	OptimalTiming           string   `json:"optimalTiming,omitempty"`
	ProgressionTips         []string `json:"progressionTips,omitempty"`
}

// Validate is the schema check at the loader boundary. A malformed record
// turns the whole document into a fetch failure rather than leaking bad
// shapes into the scoring engines.
func (r *RawHabitRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: record without id", ErrContentBadShape)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: record %s without category", ErrContentBadShape, r.ID)
	}
	if r.EffectivenessScore < 0 || r.EffectivenessScore > 10 {
		return fmt.Errorf("%w: record %s score %.2f out of range", ErrContentBadShape, r.ID, r.EffectivenessScore)
	}
	if r.EffectivenessRank < 1 {
		return fmt.Errorf("%w: record %s rank %d", ErrContentBadShape, r.ID, r.EffectivenessRank)
	}
	if r.TimeMinutes < 0 {
		return fmt.Errorf("%w: record %s negative timeMinutes", ErrContentBadShape, r.ID)
	}
	return nil
}

// ContentSource fetches one raw per-language document from the remote content
// service.
type ContentSource interface {
	FetchLanguage(ctx context.Context, lang LanguageCode) ([]RawHabitRecord, error)
}

// SnapshotRepository persists the last known-good catalog so a cold start
// with the content source down can serve real data instead of the static
// sample.
type SnapshotRepository interface {
	// Save replaces the stored snapshot wholesale.
	Save(ctx context.Context, records []*HabitRecord) error

	// Load returns the stored snapshot, or ErrSnapshotEmpty.
	Load(ctx context.Context) ([]*HabitRecord, error)
}
