// Package search ranks manual pages against a free-text query by literal
// keyword overlap. Scoring is a plain substring-occurrence count: a token
// may match inside a larger word. That imprecision is part of the contract;
// callers rely on the scores being exact occurrence counts.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

// Tokenize splits a query on whitespace, lower-cases the tokens, and drops
// tokens shorter than minLen runes.
func Tokenize(query string, minLen int) []string {
	var tokens []string
	for _, w := range strings.Fields(query) {
		if utf8.RuneCountInString(w) < minLen {
			continue
		}
		tokens = append(tokens, strings.ToLower(w))
	}
	return tokens
}

// Search scores every page against the query and returns the top limit
// pages, highest score first. Ties keep ascending page order. Pages that
// match nothing are excluded; an empty page map yields no results, which is
// the "no information available" sentinel, not an error.
func Search(query string, pages map[int]string, minTokenLen, limit int) []models.SearchResult {
	tokens := Tokenize(query, minTokenLen)
	if len(tokens) == 0 || len(pages) == 0 {
		return nil
	}

	// Visit pages in ascending page order so the later stable sort keeps
	// equal-score pages in that order.
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var results []models.SearchResult
	for _, n := range nums {
		text := strings.ToLower(pages[n])
		score := 0
		for _, tok := range tokens {
			score += strings.Count(text, tok)
		}
		if score > 0 {
			results = append(results, models.SearchResult{
				Page:  n,
				Score: score,
				Text:  pages[n],
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
