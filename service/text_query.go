package services

import (
	"strings"

	"places-server/models"
)

const TEXT_QUERY_SEPARATOR = "|"

// ResolveKeys keeps the valid keys in first-seen order without duplicates. When
// none remain it returns every valid key in ascending order.
func ResolveKeys(keys []int) []int {
	seen := make(map[int]struct{}, len(keys))
	resolved := make([]int, 0, len(keys))
	for _, k := range keys {
		if !models.IsValidCategoryKey(k) {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		resolved = append(resolved, k)
	}
	if len(resolved) == 0 {
		return models.ValidCategoryKeys()
	}
	return resolved
}

// TermsFromKeys lists, for each resolved key, the category name followed by its keywords.
func TermsFromKeys(keys []int) []string {
	var terms []string
	for _, k := range ResolveKeys(keys) {
		terms = append(terms, models.Categories[k].Terms()...)
	}
	return terms
}

// BuildTextQueryFromKeys joins TermsFromKeys with "|".
func BuildTextQueryFromKeys(keys []int) string {
	return strings.Join(TermsFromKeys(keys), TEXT_QUERY_SEPARATOR)
}

// SplitTextQuery splits a "|"-delimited query into trimmed, non-empty terms.
func SplitTextQuery(query string) []string {
	var terms []string
	for _, term := range strings.Split(query, TEXT_QUERY_SEPARATOR) {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
