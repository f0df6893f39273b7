package analysis

import (
	"strings"

	"caseflow/models"
)

// MatchPage returns, for each bank, the codes that occur in text as a
// literal case-sensitive substring. Banks without a match are omitted and
// overlapping codes across banks are all reported.
func MatchPage(text string, patterns []models.BankPattern) []models.BankMatch {
	matches := []models.BankMatch{}
	for _, p := range patterns {
		var found []string
		for _, code := range p.Codes {
			if code == "" {
				continue
			}
			if strings.Contains(text, code) {
				found = append(found, code)
			}
		}
		if len(found) > 0 {
			matches = append(matches, models.BankMatch{BankName: p.BankName, MatchedCodes: found})
		}
	}
	return matches
}

// MatchPages produces one result per page, numbered from 1, whether or not
// anything matched.
func MatchPages(pages []string, patterns []models.BankPattern) []models.PageResult {
	results := make([]models.PageResult, 0, len(pages))
	for i, text := range pages {
		results = append(results, models.PageResult{
			Page:    i + 1,
			Matches: MatchPage(text, patterns),
		})
	}
	return results
}
