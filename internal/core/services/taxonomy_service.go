package services

import (
	"log"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

// TaxonomyService resolves free-form goal tags to canonical goal ids.
// Resolution is a pure lookup over indices built once at construction;
// precedence is exact > alias > semantic > category and a lower tier never
// overrides a higher one.
type TaxonomyService struct {
	tax        *domain.Taxonomy
	byID       map[string]string
	byAlias    map[string]string
	bySynonym  map[string]string
	byCategory map[string]string
}

func NewTaxonomyService(tax *domain.Taxonomy) *TaxonomyService {
	s := &TaxonomyService{
		tax:        tax,
		byID:       make(map[string]string),
		byAlias:    make(map[string]string),
		bySynonym:  make(map[string]string),
		byCategory: make(map[string]string),
	}

	for _, m := range tax.Mappings {
		id := domain.NormalizeTag(m.OfficialID)
		if _, dup := s.byID[id]; dup {
			log.Printf("[TAXONOMY] duplicate official id %q, keeping first mapping", m.OfficialID)
			continue
		}
		s.byID[id] = m.OfficialID
	}

	// Ambiguous claims are a configuration error caught by ValidateTaxonomy;
	// at runtime the first mapping wins and the collision is logged.
	for _, m := range tax.Mappings {
		for _, a := range m.Aliases {
			alias := domain.NormalizeTag(a)
			if owner, claimed := s.byAlias[alias]; claimed {
				if owner != m.OfficialID {
					log.Printf("[TAXONOMY] alias %q claimed by %s and %s, keeping %s", a, owner, m.OfficialID, owner)
				}
				continue
			}
			s.byAlias[alias] = m.OfficialID
		}

		category := domain.NormalizeTag(m.Category)
		if _, claimed := s.byCategory[category]; !claimed {
			s.byCategory[category] = m.OfficialID
		}

		for _, word := range tax.Synonyms[category] {
			w := domain.NormalizeTag(word)
			if _, claimed := s.bySynonym[w]; !claimed {
				s.bySynonym[w] = m.OfficialID
			}
		}
	}

	return s
}

// Resolve maps a free-form tag onto the taxonomy. Pure function over the
// static table; no side effects.
func (s *TaxonomyService) Resolve(tag string) domain.ValidationResult {
	norm := domain.NormalizeTag(tag)
	if norm == "" {
		return domain.ValidationResult{MatchType: domain.MatchNone}
	}

	if id, ok := s.byID[norm]; ok {
		return domain.ValidationResult{
			IsValid:      true,
			MappedGoalID: id,
			MatchType:    domain.MatchExact,
			Confidence:   domain.ConfidenceExact,
		}
	}

	if id, ok := s.byAlias[norm]; ok {
		return domain.ValidationResult{
			IsValid:      true,
			MappedGoalID: id,
			MatchType:    domain.MatchAlias,
			Confidence:   domain.ConfidenceAlias,
		}
	}

	if id, ok := s.bySynonym[norm]; ok {
		return domain.ValidationResult{
			IsValid:      true,
			MappedGoalID: id,
			MatchType:    domain.MatchSemantic,
			Confidence:   domain.ConfidenceSemantic,
		}
	}

	if id, ok := s.byCategory[norm]; ok {
		return domain.ValidationResult{
			IsValid:      true,
			MappedGoalID: id,
			MatchType:    domain.MatchCategory,
			Confidence:   domain.ConfidenceCategory,
		}
	}

	return domain.ValidationResult{MatchType: domain.MatchNone}
}

// ValidateTaxonomy runs the offline configuration check. Call it before
// trusting the resolver; a failing table should never reach production.
func (s *TaxonomyService) ValidateTaxonomy() error {
	return s.tax.Validate()
}

// CanonicalGoals lists the official goal ids in table order.
func (s *TaxonomyService) CanonicalGoals() []string {
	out := make([]string, 0, len(s.tax.Mappings))
	for _, m := range s.tax.Mappings {
		out = append(out, m.OfficialID)
	}
	return out
}
