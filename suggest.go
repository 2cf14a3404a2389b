package main

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// labelPredicate reports whether a lowercased field label triggers a rule.
type labelPredicate func(label string) bool

func anyOf(terms ...string) labelPredicate {
	return func(label string) bool {
		for _, term := range terms {
			if strings.Contains(label, term) {
				return true
			}
		}
		return false
	}
}

func allOf(terms ...string) labelPredicate {
	return func(label string) bool {
		for _, term := range terms {
			if !strings.Contains(label, term) {
				return false
			}
		}
		return true
	}
}

// suggestionRule pairs a label predicate with the suggestion it produces.
type suggestionRule struct {
	match   labelPredicate
	suggest func(d ProjectDetails) string
}

func staticSuggestion(value string) func(ProjectDetails) string {
	return func(ProjectDetails) string { return value }
}

// SuggestionEngine fills speculative values into form fields by label keyword
// dispatch. Rules run in declared order and the first hit wins, so a label
// like "Contractor License #" resolves to the license rule, never a later
// one. Fields with no matching rule keep a nil suggestion.
type SuggestionEngine struct {
	rules []suggestionRule
}

func NewSuggestionEngine(region *Region) *SuggestionEngine {
	rules := []suggestionRule{
		{match: anyOf("description"), suggest: func(d ProjectDetails) string {
			title := cases.Title(language.English).String(d.ProjectType)
			summary := []rune(d.Description)
			if len(summary) > 20 {
				summary = summary[:20]
			}
			return title + " - " + string(summary)
		}},
		{match: anyOf("address", "location"), suggest: func(d ProjectDetails) string {
			return "123 Main St, " + d.Location + ", CA"
		}},
		{match: anyOf("date"), suggest: func(ProjectDetails) string {
			return time.Now().Format("01/02/2006")
		}},
		{match: anyOf("duration", "days"), suggest: staticSuggestion("14")},
		{match: allOf("length", "trench"), suggest: staticSuggestion("500")},
		{match: allOf("width", "trench"), suggest: staticSuggestion("24")},
		{match: anyOf("license", "contractor"), suggest: staticSuggestion("LIC-123456")},
		{match: allOf("street", "classification"), suggest: staticSuggestion("Collector Street")},
		{match: allOf("lane", "closure"), suggest: staticSuggestion("Partial - One Lane")},
		{match: anyOf("hours"), suggest: staticSuggestion("9:00 AM - 4:00 PM")},
		{match: anyOf("pedestrian"), suggest: staticSuggestion("Temporary Walkway")},
	}
	rules = append(rules, region.ExtraSuggestions...)

	return &SuggestionEngine{rules: rules}
}

// Annotate fills suggestions for every field of the document in place.
func (e *SuggestionEngine) Annotate(doc *PDFDocument, details ProjectDetails) {
	for i := range doc.FormFields {
		field := &doc.FormFields[i]
		label := strings.ToLower(field.Label)

		for _, rule := range e.rules {
			if rule.match(label) {
				value := rule.suggest(details)
				field.Suggestion = &value
				break
			}
		}
	}
}
