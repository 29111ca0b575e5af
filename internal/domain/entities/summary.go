package entities

import "encoding/json"

// Focus area categories produced by the rule summarizer
const (
	CategoryLanguage = "Language Skills"
	CategorySocial   = "Social & Emotional Skills"
	CategoryMotor    = "Motor Skills"
)

// InterestsNotSpecified is stored when the parent left interests blank
const InterestsNotSpecified = "Not specified"

// FocusArea is a developmental area flagged for support
type FocusArea struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Summary is the derived profile of a child. It is recomputed on every run.
type Summary struct {
	FocusAreas []FocusArea `json:"focus_areas"`
	Strengths  []string    `json:"strengths"`
	Interests  string      `json:"interests"`
}

// NewSummary returns an empty summary whose lists serialise as []
func NewSummary() Summary {
	return Summary{
		FocusAreas: []FocusArea{},
		Strengths:  []string{},
	}
}

// Normalize replaces nil lists and a blank interests value
func (s Summary) Normalize() Summary {
	if s.FocusAreas == nil {
		s.FocusAreas = []FocusArea{}
	}
	if s.Strengths == nil {
		s.Strengths = []string{}
	}
	if s.Interests == "" {
		s.Interests = InterestsNotSpecified
	}
	return s
}

// Categories returns the distinct focus area categories in first-seen order
func (s Summary) Categories() []string {
	seen := make(map[string]struct{}, len(s.FocusAreas))
	out := make([]string, 0, len(s.FocusAreas))
	for _, fa := range s.FocusAreas {
		if _, ok := seen[fa.Category]; ok {
			continue
		}
		seen[fa.Category] = struct{}{}
		out = append(out, fa.Category)
	}
	return out
}

// MarshalJSON guarantees lists are never encoded as null
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	if s.FocusAreas == nil {
		s.FocusAreas = []FocusArea{}
	}
	if s.Strengths == nil {
		s.Strengths = []string{}
	}
	return json.Marshal(plain(s))
}
