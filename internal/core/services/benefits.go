package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Benefit extraction is a keyword heuristic over free-text research
// summaries, kept for compatibility with the content catalog's copy. It will
// produce false positives and negatives on unusual phrasing; the keyword list
// is frozen and must not grow without product guidance.

type benefitKeywordGroup struct {
	label string
	words []string
}

var benefitKeywords = []benefitKeywordGroup{
	{label: "Better sleep quality", words: []string{"sleep"}},
	{label: "Reduced stress and anxiety", words: []string{"stress", "anxiety"}},
	{label: "Improved mood", words: []string{"mood", "happiness", "happier"}},
	{label: "Sharper focus", words: []string{"focus", "attention", "concentration"}},
}

var percentPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s?%`)

// extractBenefits scans research summaries for the known benefit keywords and
// percentage-improvement figures, returning deduplicated benefit strings in
// first-seen order.
func extractBenefits(summaries []string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(benefit string) {
		if benefit == "" || seen[benefit] {
			return
		}
		seen[benefit] = true
		out = append(out, benefit)
	}

	for _, summary := range summaries {
		lower := strings.ToLower(summary)

		for _, group := range benefitKeywords {
			for _, w := range group.words {
				if strings.Contains(lower, w) {
					add(group.label)
					break
				}
			}
		}

		for _, pct := range percentPattern.FindAllString(summary, -1) {
			add(fmt.Sprintf("Research reports a %s improvement", strings.TrimSpace(pct)))
		}
	}

	return out
}
