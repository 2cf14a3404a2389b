package main

import "strings"

// descriptionLimit is where extracted descriptions get truncated.
const descriptionLimit = 100

// ProjectExtractor derives ProjectDetails from free text using the region's
// ordered substring rules. Pure and deterministic: same text, same details.
type ProjectExtractor struct {
	region *Region
}

func NewProjectExtractor(region *Region) *ProjectExtractor {
	return &ProjectExtractor{region: region}
}

func (e *ProjectExtractor) Extract(text string) ProjectDetails {
	lower := strings.ToLower(text)

	details := ProjectDetails{
		Description: truncate(text, descriptionLimit),
		Location:    firstRuleValue(e.region.Locations, lower, e.region.DefaultLocation),
		ProjectType: firstRuleValue(e.region.ProjectTypes, lower, e.region.DefaultProjectType),
		ClientType:  "civil engineer",
	}

	if strings.Contains(lower, "contractor") {
		details.ClientType = "contractor"
	}

	if e.region.DurationDays > 0 {
		days := e.region.DurationDays
		details.EstimatedDuration = &days
	}

	return details
}

// firstRuleValue walks the rules in declared order and returns the value of
// the first rule whose terms hit. Declared order is the contract: text that
// triggers several rules resolves to the earliest one.
func firstRuleValue(rules []matchRule, lower, fallback string) string {
	for _, rule := range rules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.value
			}
		}
	}
	return fallback
}

// truncate keeps the first limit characters and marks the cut with "...".
// Text at or under the limit passes through verbatim.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
