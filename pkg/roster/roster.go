// Package roster provides the built-in reference data set so the engine
// can run without external data files.
package roster

import "github.com/kynrd/threadloom/pkg/types"

var defaultPersonas = []types.Persona{
	{
		ID:        "persona-maya",
		Username:  "maya_builds",
		Role:      "freelance web developer",
		Backstory: "Went freelance two years ago after an agency layoff. Juggles four or five client projects at once and is always behind on invoicing.",
		PainPoints: []string{
			"keeping track of billable hours across client projects",
			"chasing late invoices without souring the relationship",
			"context switching between client codebases every day",
			"scoping fixed-price projects without getting burned",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.7,
			TypoRate:   0.3,
			VenueAuthenticity: map[string]float64{
				"venue-freelance":     0.9,
				"venue-webdev":        0.8,
				"venue-productivity":  0.6,
				"venue-smallbusiness": 0.5,
			},
		},
	},
	{
		ID:        "persona-derek",
		Username:  "dkw_ops",
		Role:      "operations manager at a 40-person logistics firm",
		Backstory: "Inherited a pile of spreadsheets from his predecessor and is slowly digitizing the workflow while keeping drivers paid on time.",
		PainPoints: []string{
			"replacing spreadsheet chaos with an actual workflow",
			"getting non-technical staff to adopt new tools",
			"weekly reporting that eats an entire afternoon",
			"tracking vehicle maintenance schedules reliably",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.4,
			TypoRate:   0.1,
			VenueAuthenticity: map[string]float64{
				"venue-smallbusiness": 0.9,
				"venue-productivity":  0.7,
				"venue-freelance":     0.3,
			},
		},
	},
	{
		ID:        "persona-priya",
		Username:  "priyatries",
		Role:      "grad student and part-time tutor",
		Backstory: "Balancing a thesis, two tutoring gigs and an attempt at a side project. Perpetually optimizing her study setup.",
		PainPoints: []string{
			"planning a semester around unpredictable tutoring hours",
			"note taking systems that actually survive exam season",
			"staying focused during long library sessions",
			"cheap tools for managing tutoring students and payments",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.85,
			TypoRate:   0.4,
			VenueAuthenticity: map[string]float64{
				"venue-students":     0.95,
				"venue-productivity": 0.75,
				"venue-webdev":       0.4,
			},
		},
	},
	{
		ID:        "persona-tom",
		Username:  "tom_h_craft",
		Role:      "woodworker selling through an online shop",
		Backstory: "Turned a garage hobby into a small online storefront. Loves the craft, tolerates the admin.",
		PainPoints: []string{
			"photographing products well without studio gear",
			"keeping up with customer messages during busy weeks",
			"pricing handmade work against mass-produced listings",
			"shipping fragile items without losing margin",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.6,
			TypoRate:   0.25,
			VenueAuthenticity: map[string]float64{
				"venue-makers":        0.95,
				"venue-smallbusiness": 0.7,
				"venue-productivity":  0.4,
			},
		},
	},
	{
		ID:        "persona-lena",
		Username:  "lena_remote",
		Role:      "remote customer success lead",
		Backstory: "Five years fully remote across three time zones of customers. Strong opinions about meetings that could have been emails.",
		PainPoints: []string{
			"scheduling across time zones without 6am calls",
			"keeping async updates from turning into essays",
			"onboarding new customers without repeating herself",
			"measuring customer health beyond gut feeling",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.55,
			TypoRate:   0.15,
			VenueAuthenticity: map[string]float64{
				"venue-remote":        0.9,
				"venue-productivity":  0.8,
				"venue-smallbusiness": 0.5,
			},
		},
	},
	{
		ID:        "persona-raj",
		Username:  "raj_codes_late",
		Role:      "backend developer with a side project habit",
		Backstory: "Ships other people's software by day, abandons his own projects by night. Trying to break the cycle.",
		PainPoints: []string{
			"finding time for side projects after work hours",
			"deploying hobby projects without a devops budget",
			"staying motivated past the first two weekends",
			"picking a stack without endless comparison spirals",
		},
		Voice: types.VoiceProfile{
			Casualness: 0.75,
			TypoRate:   0.35,
			VenueAuthenticity: map[string]float64{
				"venue-webdev":       0.9,
				"venue-productivity": 0.6,
				"venue-students":     0.3,
			},
		},
	},
}

var defaultVenues = []types.Venue{
	{
		ID:             "venue-productivity",
		Name:           "r/productivity",
		Audience:       []string{"knowledge workers", "students", "self-improvement"},
		Tone:           "earnest",
		ActivityLevel:  0.7,
		RelevanceTerms: []string{"time", "focus", "planning", "workflow", "schedule", "habit", "notes"},
	},
	{
		ID:             "venue-freelance",
		Name:           "r/freelance",
		Audience:       []string{"freelancers", "consultants", "contractors"},
		Tone:           "pragmatic",
		ActivityLevel:  0.6,
		RelevanceTerms: []string{"client", "invoice", "rate", "contract", "project", "billable"},
	},
	{
		ID:             "venue-smallbusiness",
		Name:           "r/smallbusiness",
		Audience:       []string{"owners", "operators", "managers"},
		Tone:           "practical",
		ActivityLevel:  0.65,
		RelevanceTerms: []string{"staff", "customer", "pricing", "workflow", "reporting", "spreadsheet", "shipping"},
	},
	{
		ID:             "venue-webdev",
		Name:           "r/webdev",
		Audience:       []string{"developers", "designers"},
		Tone:           "direct",
		ActivityLevel:  0.8,
		RelevanceTerms: []string{"code", "deploy", "stack", "project", "codebase", "tool"},
	},
	{
		ID:             "venue-students",
		Name:           "r/college",
		Audience:       []string{"students", "grad students"},
		Tone:           "casual",
		ActivityLevel:  0.75,
		RelevanceTerms: []string{"semester", "exam", "study", "notes", "tutoring", "library", "thesis"},
	},
	{
		ID:             "venue-remote",
		Name:           "r/remotework",
		Audience:       []string{"remote workers", "distributed teams"},
		Tone:           "conversational",
		ActivityLevel:  0.55,
		RelevanceTerms: []string{"remote", "async", "meeting", "time zone", "onboarding", "schedule"},
	},
	{
		ID:             "venue-makers",
		Name:           "r/somethingimade",
		Audience:       []string{"crafters", "makers", "artists"},
		Tone:           "supportive",
		ActivityLevel:  0.5,
		RelevanceTerms: []string{"handmade", "product", "photo", "shop", "shipping", "pricing", "craft"},
	},
}

var defaultTags = []types.Tag{
	{ID: "tag-timetracking", Text: "time tracking", SemanticTerms: []string{"hours", "billable", "time"}, Intent: types.IntentEfficiency},
	{ID: "tag-invoicing", Text: "invoicing", SemanticTerms: []string{"invoice", "payment", "late"}, Intent: types.IntentAssistance},
	{ID: "tag-toolcompare", Text: "tool comparison", SemanticTerms: []string{"versus", "comparison", "alternative", "stack"}, Intent: types.IntentComparison},
	{ID: "tag-recommendations", Text: "app recommendations", SemanticTerms: []string{"recommend", "suggestion", "tool", "app"}, Intent: types.IntentRecommendation},
	{ID: "tag-scheduling", Text: "scheduling", SemanticTerms: []string{"schedule", "calendar", "time zone"}, Intent: types.IntentEfficiency},
	{ID: "tag-notetaking", Text: "note taking", SemanticTerms: []string{"notes", "study", "organize"}, Intent: types.IntentAssistance},
	{ID: "tag-automation", Text: "automation", SemanticTerms: []string{"automate", "workflow", "manual", "spreadsheet"}, Intent: types.IntentEfficiency},
	{ID: "tag-clientwork", Text: "client management", SemanticTerms: []string{"client", "customer", "onboarding"}, Intent: types.IntentAssistance},
	{ID: "tag-focus", Text: "focus and habits", SemanticTerms: []string{"focus", "habit", "distraction", "motivation"}, Intent: types.IntentAssistance},
	{ID: "tag-pricing", Text: "pricing", SemanticTerms: []string{"pricing", "rate", "margin", "charge"}, Intent: types.IntentComparison},
}

// DefaultPersonas returns a copy of the built-in persona set.
func DefaultPersonas() []types.Persona {
	out := make([]types.Persona, len(defaultPersonas))
	copy(out, defaultPersonas)
	return out
}

// DefaultVenues returns a copy of the built-in venue set.
func DefaultVenues() []types.Venue {
	out := make([]types.Venue, len(defaultVenues))
	copy(out, defaultVenues)
	return out
}

// DefaultTags returns a copy of the built-in tag set.
func DefaultTags() []types.Tag {
	out := make([]types.Tag, len(defaultTags))
	copy(out, defaultTags)
	return out
}
