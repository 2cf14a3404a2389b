package main

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxMatches caps how many workflows a single match call returns.
const maxMatches = 3

// WorkflowMatcher scores free project text against one region's workflow
// catalog. Matching is raw substring search over normalized text: no
// tokenization, no deduplication. A term that happens to sit inside an
// unrelated word still counts.
type WorkflowMatcher struct {
	region  *Region
	catalog []WorkflowRecord
}

func NewWorkflowMatcher(region *Region, catalog []WorkflowRecord) *WorkflowMatcher {
	return &WorkflowMatcher{region: region, catalog: catalog}
}

// normalizeText folds unicode, maps all space runes to ' ', lowercases and
// collapses whitespace runs so substring checks see one canonical form.
func normalizeText(text string) string {
	text = norm.NFKD.String(text)

	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)

	text = strings.ToLower(strings.TrimSpace(text))

	return strings.Join(strings.Fields(text), " ")
}

// Match returns the top scored workflows for the text, at most maxMatches,
// sorted by relevance score descending. Ties keep catalog order. Workflows
// with score zero are dropped.
func (m *WorkflowMatcher) Match(text, location string) []WorkflowMatch {
	normalized := normalizeText(text)

	matches := make([]WorkflowMatch, 0, len(m.catalog))

	for _, wf := range m.catalog {
		score := 0
		matched := []string{}

		for _, term := range wf.KeyTerms {
			if strings.Contains(normalized, strings.ToLower(term)) {
				score++
				matched = append(matched, term)
			}
		}

		if location != "" && m.locationHit(location, wf) {
			score += m.region.LocationBonus
			matched = append(matched, location)
		}

		if score > 0 {
			matches = append(matches, WorkflowMatch{
				ID:             wf.ID,
				Title:          wf.Title,
				RelevanceScore: score,
				KeyTerms:       matched,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return matches
}

// locationHit applies the region's boost rule: regions with a marker boost
// whenever the location names the region itself, others boost when the
// location appears in the workflow title.
func (m *WorkflowMatcher) locationHit(location string, wf WorkflowRecord) bool {
	loc := strings.ToLower(location)
	if m.region.LocationMarker != "" {
		return strings.Contains(loc, m.region.LocationMarker)
	}
	return strings.Contains(strings.ToLower(wf.Title), loc)
}
