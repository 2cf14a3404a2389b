package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDefaults(t *testing.T) {
	details := NewProjectExtractor(generalRegion).Extract("install new water line")

	assert.Equal(t, "install new water line", details.Description)
	assert.Equal(t, "San Jose", details.Location)
	assert.Equal(t, "utility", details.ProjectType)
	assert.Equal(t, "civil engineer", details.ClientType)
	assert.Nil(t, details.EstimatedDuration)
}

func TestExtractProjectTypes(t *testing.T) {
	extractor := NewProjectExtractor(generalRegion)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no trigger", "repave the damaged section", "utility"},
		{"road", "fix the road near the park", "road repair"},
		{"pavement", "new pavement section needed", "road repair"},
		{"sidewalk", "sidewalk replacement project", "sidewalk"},
		{"first rule wins", "roadside sidewalk work", "road repair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Extract(tt.text).ProjectType)
		})
	}
}

func TestExtractLocationOverrides(t *testing.T) {
	extractor := NewProjectExtractor(generalRegion)

	tests := []struct {
		text string
		want string
	}{
		{"utility work in Oakland", "Oakland"},
		{"job in San Francisco downtown", "San Francisco"},
		{"sf waterfront project", "San Francisco"},
		{"somewhere else entirely", "San Jose"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractor.Extract(tt.text).Location, "text: %s", tt.text)
	}
}

func TestExtractClientType(t *testing.T) {
	extractor := NewProjectExtractor(generalRegion)

	assert.Equal(t, "contractor", extractor.Extract("licensed contractor needed for dig").ClientType)
	assert.Equal(t, "civil engineer", extractor.Extract("engineering review of plans").ClientType)
}

func TestExtractDescriptionTruncation(t *testing.T) {
	extractor := NewProjectExtractor(generalRegion)

	exact := strings.Repeat("a", 100)
	assert.Equal(t, exact, extractor.Extract(exact).Description)

	long := strings.Repeat("b", 101)
	got := extractor.Extract(long).Description
	assert.Equal(t, strings.Repeat("b", 100)+"...", got)
	assert.Len(t, got, 103)
}

func TestExtractLosAngeles(t *testing.T) {
	extractor := NewProjectExtractor(losAngelesRegion)

	details := extractor.Extract("curb ramp work near the school")
	assert.Equal(t, "Los Angeles County", details.Location)
	assert.Equal(t, "sidewalk", details.ProjectType)
	require.NotNil(t, details.EstimatedDuration)
	assert.Equal(t, 14, *details.EstimatedDuration)

	details = extractor.Extract("lane closure on main st")
	assert.Equal(t, "traffic control", details.ProjectType)

	details = extractor.Extract("new storefront in Pasadena")
	assert.Equal(t, "Pasadena", details.Location)
}

func TestExtractDeterministic(t *testing.T) {
	extractor := NewProjectExtractor(generalRegion)
	text := "Need to install fiber optic cable in San Jose, 500ft trench along Main Street"

	first := extractor.Extract(text)
	second := extractor.Extract(text)

	assert.Equal(t, first, second)
}
