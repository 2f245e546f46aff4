package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

// DefaultCatalogTTL bounds how long a fetched catalog is served from memory
// before a refetch. Policy constant, overridable per instance.
const DefaultCatalogTTL = 5 * time.Minute

// CatalogProvider is the narrow port the ranking and recommendation engines
// consume.
type CatalogProvider interface {
	Load(ctx context.Context, langs []domain.LanguageCode) (*domain.Catalog, error)
}

type cacheEntry struct {
	catalog   *domain.Catalog
	expiresAt time.Time
}

// CatalogService is the habit catalog loader: it fetches per-language
// documents from the content source, joins them by record id, and serves the
// result from a struct-held TTL cache keyed by the language set.
//
// Failure is tiered: a secondary language failing degrades to primary-only;
// the primary failing falls back to the last persisted snapshot, then to the
// built-in static sample. Every degradation is flagged in CatalogMeta.
type CatalogService struct {
	source    domain.ContentSource
	snapshots domain.SnapshotRepository
	taxonomy  *TaxonomyService
	ttl       time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewCatalogService builds a loader. snapshots may be nil, which skips the
// snapshot fallback tier. ttl <= 0 falls back to DefaultCatalogTTL.
func NewCatalogService(source domain.ContentSource, snapshots domain.SnapshotRepository, taxonomy *TaxonomyService, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogService{
		source:    source,
		snapshots: snapshots,
		taxonomy:  taxonomy,
		ttl:       ttl,
		cache:     make(map[string]cacheEntry),
	}
}

// Load returns the catalog for the requested language set. Concurrent calls
// with the same key may race to populate the cache; the data is idempotent so
// the last writer winning is acceptable.
func (s *CatalogService) Load(ctx context.Context, langs []domain.LanguageCode) (*domain.Catalog, error) {
	langs, langWarnings := normalizeLanguages(langs)
	key := cacheKey(langs)

	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		meta := entry.catalog.Meta
		meta.FromCache = true
		return &domain.Catalog{Records: entry.catalog.Records, Meta: meta}, nil
	}

	rawPrimary, err := s.source.FetchLanguage(ctx, domain.PrimaryLanguage)
	if err != nil {
		return s.degraded(ctx, err)
	}

	records, index, warnings, err := s.buildRecords(rawPrimary)
	if err != nil {
		return s.degraded(ctx, err)
	}
	warnings = append(langWarnings, warnings...)

	fallback := domain.FallbackNone
	loaded := []domain.LanguageCode{domain.PrimaryLanguage}

	for _, lang := range langs {
		if lang == domain.PrimaryLanguage {
			continue
		}

		rawLang, err := s.source.FetchLanguage(ctx, lang)
		if err != nil {
			log.Printf("[CATALOG] fetch failed for language %s: %v", lang, err)
			warnings = append(warnings, fmt.Sprintf("language %s unavailable, serving primary language text", lang))
			fallback = domain.FallbackPrimaryOnly
			continue
		}

		s.mergeLanguage(index, lang, rawLang)
		loaded = append(loaded, lang)
	}

	catalog := &domain.Catalog{
		Records: records,
		Meta: domain.CatalogMeta{
			FetchedAt: time.Now().UTC(),
			Languages: loaded,
			Fallback:  fallback,
			Warnings:  warnings,
		},
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{catalog: catalog, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	if fallback == domain.FallbackNone && s.snapshots != nil {
		if err := s.snapshots.Save(ctx, records); err != nil {
			log.Printf("[CATALOG] snapshot save failed: %v", err)
		}
	}

	return catalog, nil
}

// ClearCache drops every cached entry wholesale. There is no partial
// invalidation by design.
func (s *CatalogService) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
}

// degraded serves the snapshot tier, then the static sample. Both are
// explicit degraded modes flagged in the metadata, not a masking strategy.
func (s *CatalogService) degraded(ctx context.Context, cause error) (*domain.Catalog, error) {
	log.Printf("[CATALOG] content source unavailable: %v", cause)
	warnings := []string{fmt.Sprintf("content source unavailable: %v", cause)}

	if s.snapshots != nil {
		records, err := s.snapshots.Load(ctx)
		if err == nil && len(records) > 0 {
			return &domain.Catalog{
				Records: records,
				Meta: domain.CatalogMeta{
					FetchedAt: time.Now().UTC(),
					Languages: []domain.LanguageCode{domain.PrimaryLanguage},
					Fallback:  domain.FallbackSnapshot,
					Warnings:  append(warnings, "serving last persisted catalog snapshot"),
				},
			}, nil
		}
		if err != nil && err != domain.ErrSnapshotEmpty {
			log.Printf("[CATALOG] snapshot load failed: %v", err)
		}
	}

	records, _, buildWarnings, err := s.buildRecords(staticSampleRecords())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, cause)
	}

	return &domain.Catalog{
		Records: records,
		Meta: domain.CatalogMeta{
			FetchedAt: time.Now().UTC(),
			Languages: []domain.LanguageCode{domain.PrimaryLanguage},
			Fallback:  domain.FallbackStatic,
			Warnings:  append(append(warnings, "serving built-in static sample"), buildWarnings...),
		},
	}, nil
}

// buildRecords converts a validated primary-language document into normalized
// records. Difficulty values outside the source vocabulary and category tags
// the taxonomy cannot resolve become data-quality warnings, never silent
// drops.
func (s *CatalogService) buildRecords(raw []domain.RawHabitRecord) ([]*domain.HabitRecord, map[string]*domain.HabitRecord, []string, error) {
	records := make([]*domain.HabitRecord, 0, len(raw))
	index := make(map[string]*domain.HabitRecord, len(raw))
	var warnings []string
	seenRanks := make(map[string]map[int]string)

	for _, r := range raw {
		if err := r.Validate(); err != nil {
			return nil, nil, nil, err
		}

		difficulty, known := domain.NormalizeDifficulty(r.Difficulty)
		if !known {
			log.Printf("[CATALOG] unknown difficulty %q on record %s, defaulting to %s", r.Difficulty, r.ID, difficulty)
			warnings = append(warnings, fmt.Sprintf("record %s: unknown difficulty %q defaulted to %s", r.ID, r.Difficulty, difficulty))
		}

		goal := r.Category
		if res := s.taxonomy.Resolve(r.Category); res.IsValid {
			goal = res.MappedGoalID
		} else {
			warnings = append(warnings, fmt.Sprintf("record %s: category %q not in taxonomy", r.ID, r.Category))
		}

		if seenRanks[goal] == nil {
			seenRanks[goal] = make(map[int]string)
		}
		if other, dup := seenRanks[goal][r.EffectivenessRank]; dup {
			warnings = append(warnings, fmt.Sprintf("records %s and %s share rank %d in goal %s", other, r.ID, r.EffectivenessRank, goal))
		}
		seenRanks[goal][r.EffectivenessRank] = r.ID

		rec := &domain.HabitRecord{
			ID:                      r.ID,
			GoalCategory:            goal,
			EffectivenessScore:      r.EffectivenessScore,
			EffectivenessRank:       r.EffectivenessRank,
			IsPrimaryRecommendation: r.IsPrimaryRecommendation,
			Difficulty:              difficulty,
			TimeMinutes:             r.TimeMinutes,
			GoalTags:                r.GoalTags,
			Translations: map[domain.LanguageCode]domain.Translation{
				domain.PrimaryLanguage: translationFromRaw(r),
			},
		}

		records = append(records, rec)
		index[rec.ID] = rec
	}

	return records, index, warnings, nil
}

// mergeLanguage joins a secondary-language document onto the records by id.
// Missing per-language fields fall back to the primary language text; a field
// is never left as an empty string when the primary has content.
func (s *CatalogService) mergeLanguage(index map[string]*domain.HabitRecord, lang domain.LanguageCode, raw []domain.RawHabitRecord) {
	for _, r := range raw {
		rec, ok := index[r.ID]
		if !ok {
			log.Printf("[CATALOG] language %s carries unknown record %s, skipping", lang, r.ID)
			continue
		}

		primary := rec.Translations[domain.PrimaryLanguage]
		tr := translationFromRaw(r)

		tr.Title = coalesce(tr.Title, primary.Title)
		tr.Description = coalesce(tr.Description, primary.Description)
		tr.ResearchSummary = coalesce(tr.ResearchSummary, primary.ResearchSummary)
		tr.OptimalTiming = coalesce(tr.OptimalTiming, primary.OptimalTiming)
		tr.CategoryLabel = coalesce(tr.CategoryLabel, primary.CategoryLabel)
		if len(tr.Instructions) == 0 {
			tr.Instructions = primary.Instructions
		}
		if len(tr.Sources) == 0 {
			tr.Sources = primary.Sources
		}
		if len(tr.ProgressionTips) == 0 {
			tr.ProgressionTips = primary.ProgressionTips
		}

		rec.Translations[lang] = tr
	}
}

func translationFromRaw(r domain.RawHabitRecord) domain.Translation {
	return domain.Translation{
		Title:           r.Title,
		Description:     r.Description,
		ResearchSummary: r.WhyEffective,
		Instructions:    r.Instructions,
		Sources:         r.Sources,
		OptimalTiming:   r.OptimalTiming,
		ProgressionTips: r.ProgressionTips,
		CategoryLabel:   r.Category,
	}
}

func coalesce(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

// normalizeLanguages dedupes the requested set, drops unsupported codes with
// a warning, and guarantees the primary language is present.
func normalizeLanguages(langs []domain.LanguageCode) ([]domain.LanguageCode, []string) {
	var warnings []string
	out := []domain.LanguageCode{domain.PrimaryLanguage}
	seen := map[domain.LanguageCode]bool{domain.PrimaryLanguage: true}

	for _, l := range langs {
		if seen[l] {
			continue
		}
		if !domain.IsSupportedLanguage(l) {
			warnings = append(warnings, fmt.Sprintf("unsupported language %q ignored", l))
			continue
		}
		seen[l] = true
		out = append(out, l)
	}

	return out, warnings
}

func cacheKey(langs []domain.LanguageCode) string {
	keys := make([]string, 0, len(langs))
	for _, l := range langs {
		keys = append(keys, string(l))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
