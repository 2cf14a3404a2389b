package main

// matchRule maps a set of trigger substrings to a value. Rules are evaluated
// in declared order and the first hit wins, so the order is part of the
// extraction contract.
type matchRule struct {
	terms []string
	value string
}

// docInfo carries the per-region identity of a canned form template.
type docInfo struct {
	ID   string
	Name string
	Type string
}

// Region parametrizes the matcher, extractor, selector and suggestion engine
// for one jurisdiction. A single configured pipeline replaces what used to be
// a near-identical copy per region.
type Region struct {
	Name            string
	DefaultLocation string

	// LocationBonus is added to a workflow's relevance score when the request
	// location hits. With an empty LocationMarker the hit test is "location is
	// a substring of the workflow title"; with a marker it is "location
	// contains the marker".
	LocationBonus  int
	LocationMarker string

	Locations          []matchRule
	DefaultProjectType string
	ProjectTypes       []matchRule

	// DurationDays is a fixed estimated duration for extracted projects.
	// Zero means the region does not estimate durations.
	DurationDays int

	// ExtraSuggestions are appended after the base suggestion rule table.
	ExtraSuggestions []suggestionRule

	TrenchDoc  docInfo
	TrafficDoc docInfo
	UtilityDoc docInfo
}

var generalRegion = &Region{
	Name:            "general",
	DefaultLocation: "San Jose",
	LocationBonus:   3,
	Locations: []matchRule{
		{terms: []string{"oakland"}, value: "Oakland"},
		{terms: []string{"san francisco", "sf"}, value: "San Francisco"},
	},
	DefaultProjectType: "utility",
	ProjectTypes: []matchRule{
		{terms: []string{"road", "pavement"}, value: "road repair"},
		{terms: []string{"sidewalk"}, value: "sidewalk"},
	},
	TrenchDoc:  docInfo{ID: "trench-permit", Name: "Trenching Permit Application", Type: "Municipal Permit"},
	TrafficDoc: docInfo{ID: "traffic-control", Name: "Traffic Control Plan", Type: "Traffic Management"},
	UtilityDoc: docInfo{ID: "utilities-notification", Name: "Utility Notification Form", Type: "811 Notification"},
}

var losAngelesRegion = &Region{
	Name:            "los-angeles",
	DefaultLocation: "Los Angeles County",
	LocationBonus:   2,
	LocationMarker:  "los angeles",
	Locations: []matchRule{
		{terms: []string{"long beach"}, value: "Long Beach"},
		{terms: []string{"pasadena"}, value: "Pasadena"},
		{terms: []string{"santa monica"}, value: "Santa Monica"},
	},
	DefaultProjectType: "utility",
	ProjectTypes: []matchRule{
		{terms: []string{"road", "pavement"}, value: "road repair"},
		{terms: []string{"sidewalk", "curb"}, value: "sidewalk"},
		{terms: []string{"traffic", "lane closure"}, value: "traffic control"},
	},
	DurationDays: 14,
	ExtraSuggestions: []suggestionRule{
		{match: anyOf("agency"), suggest: staticSuggestion("LA County Public Works")},
		{match: anyOf("jurisdiction"), suggest: staticSuggestion("Los Angeles County")},
	},
	TrenchDoc:  docInfo{ID: "la-trenching-permit", Name: "LA County Trenching Permit Application", Type: "LA County Public Works Permit"},
	TrafficDoc: docInfo{ID: "la-traffic-control-plan", Name: "LA County Traffic Control Plan", Type: "Traffic Management"},
	UtilityDoc: docInfo{ID: "la-utility-notification", Name: "LA County Utility Notification Form", Type: "DigAlert Notification"},
}

var regions = map[string]*Region{
	generalRegion.Name:    generalRegion,
	losAngelesRegion.Name: losAngelesRegion,
}

// builtinWorkflows are the catalogs compiled into the binary. A
// catalogs/<region>.json file takes precedence when present.
var builtinWorkflows = map[string][]WorkflowRecord{
	"general": {
		{
			ID:         "utility-trenching-sanjose",
			Title:      "Utility Trenching Permits - San Jose",
			KeyTerms:   []string{"trench", "utility", "excavation", "san jose", "fiber", "conduit", "underground"},
			FormTypes:  []string{"trenching permit", "encroachment permit", "traffic control plan"},
			Agency:     "City of San Jose Department of Transportation",
			PriceCents: 29900,
		},
		{
			ID:         "road-repair-oakland",
			Title:      "Road Repair & ROW Permits - Oakland",
			KeyTerms:   []string{"road", "repair", "asphalt", "concrete", "oakland", "right of way", "pavement"},
			FormTypes:  []string{"right of way permit", "pavement cut permit"},
			Agency:     "City of Oakland Public Works",
			PriceCents: 27900,
		},
		{
			ID:         "sidewalk-sanfrancisco",
			Title:      "Sidewalk Construction Permits - San Francisco",
			KeyTerms:   []string{"sidewalk", "curb", "gutter", "ada", "ramp", "san francisco"},
			FormTypes:  []string{"sidewalk permit", "minor encroachment permit"},
			Agency:     "San Francisco Public Works",
			PriceCents: 19900,
		},
	},
	"los-angeles": {
		{
			ID:         "la-utility-trenching",
			Title:      "LA County Utility Trenching Permit Workflow",
			KeyTerms:   []string{"trench", "utility", "excavation", "fiber", "conduit", "underground", "telecommunications"},
			FormTypes:  []string{"trenching permit", "encroachment permit", "traffic control plan"},
			Agency:     "LA County Public Works",
			PriceCents: 29900,
		},
		{
			ID:         "la-traffic-control",
			Title:      "LA County Traffic Control Plan Package",
			KeyTerms:   []string{"traffic", "lane closure", "road construction", "detour", "flagger"},
			FormTypes:  []string{"traffic control plan", "lane closure permit"},
			Agency:     "LA Department of Transportation",
			PriceCents: 24900,
		},
		{
			ID:         "la-sidewalk",
			Title:      "LA County Sidewalk Construction Workflow",
			KeyTerms:   []string{"sidewalk", "curb", "gutter", "ada", "ramp", "walkway"},
			FormTypes:  []string{"sidewalk permit", "excavation permit"},
			Agency:     "LA County Public Works",
			PriceCents: 19900,
		},
		{
			ID:         "la-road-repair",
			Title:      "LA County Road Repair & ROW Permits",
			KeyTerms:   []string{"road", "repair", "pothole", "asphalt", "pavement", "resurfacing", "right of way"},
			FormTypes:  []string{"right of way permit", "pavement cut permit"},
			Agency:     "LA County Public Works",
			PriceCents: 27900,
		},
		{
			ID:         "la-storm-drain",
			Title:      "LA County Storm Drain Installation Package",
			KeyTerms:   []string{"storm drain", "drainage", "culvert", "flood", "stormwater"},
			FormTypes:  []string{"drainage permit", "flood control permit"},
			Agency:     "LA County Flood Control District",
			PriceCents: 22900,
		},
	},
}
