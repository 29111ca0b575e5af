package enrollment

import (
	"context"
	"strings"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// Summarizer turns a questionnaire into a child profile
type Summarizer interface {
	Summarize(ctx context.Context, answers entities.AnswerSet) (entities.Summary, error)
}

type concernRule struct {
	triggers []string
	area     entities.FocusArea
}

// Rules are evaluated in this order; each appends at most one focus area.
var concernRules = []concernRule{
	{
		triggers: []string{"Speech Delay", "Difficulty Understanding"},
		area: entities.FocusArea{
			Category: entities.CategoryLanguage,
			Reason:   "Parent noted concerns about speech and comprehension.",
		},
	},
	{
		triggers: []string{"Difficulty Sharing", "Shyness"},
		area: entities.FocusArea{
			Category: entities.CategorySocial,
			Reason:   "Parent noted challenges with peer interaction and sharing.",
		},
	},
	{
		triggers: []string{"Fine Motor Issues", "Clumsiness"},
		area: entities.FocusArea{
			Category: entities.CategoryMotor,
			Reason:   "Parent noted difficulties with fine motor tasks.",
		},
	},
}

const (
	cognitiveAboveAverage = "Above Average"
	cognitiveStrength     = "Advanced problem-solving and cognitive abilities noted by parent."
)

// RuleSummarizer applies fixed keyword rules. It is pure and deterministic.
type RuleSummarizer struct{}

// NewRuleSummarizer creates a RuleSummarizer
func NewRuleSummarizer() *RuleSummarizer {
	return &RuleSummarizer{}
}

// Summarize builds the summary from concerns, cognitive skills and interests
func (RuleSummarizer) Summarize(_ context.Context, answers entities.AnswerSet) (entities.Summary, error) {
	summary := entities.NewSummary()

	concerns := make(map[string]struct{}, len(answers.Concerns))
	for _, c := range answers.Concerns {
		concerns[fold(c)] = struct{}{}
	}

	for _, rule := range concernRules {
		if rule.matches(concerns) {
			summary.FocusAreas = append(summary.FocusAreas, rule.area)
		}
	}

	if fold(answers.CognitiveSkills) == fold(cognitiveAboveAverage) {
		summary.Strengths = append(summary.Strengths, cognitiveStrength)
	}

	summary.Interests = answers.Interests
	if summary.Interests == "" {
		summary.Interests = entities.InterestsNotSpecified
	}

	return summary, nil
}

func (r concernRule) matches(concerns map[string]struct{}) bool {
	for _, t := range r.triggers {
		if _, ok := concerns[fold(t)]; ok {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
