package enrollment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/pkg/ai"
)

const llmSystemPrompt = `You review early-years enrollment questionnaires for a school.
Reply with a single JSON object and nothing else, using exactly this shape:
{"focus_areas":[{"category":"...","reason":"..."}],"strengths":["..."],"interests":"..."}
Use only these categories: "Language Skills", "Social & Emotional Skills", "Motor Skills".
Write each reason as one short sentence starting with "Parent noted".
Copy interests from the questionnaire, or use "Not specified" when absent.`

// LLMSummarizer asks a chat completion model for the summary.
// Any client or parse failure is returned as an error.
type LLMSummarizer struct {
	client ai.ChatCompleter
	logger *zap.Logger
}

// NewLLMSummarizer creates an LLMSummarizer
func NewLLMSummarizer(client ai.ChatCompleter, logger *zap.Logger) *LLMSummarizer {
	return &LLMSummarizer{client: client, logger: logger}
}

// Summarize sends the answer set to the model and parses its JSON reply
func (s *LLMSummarizer) Summarize(ctx context.Context, answers entities.AnswerSet) (entities.Summary, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return entities.Summary{}, fmt.Errorf("%w: encode answers: %w", entities.ErrSummaryGeneration, err)
	}

	content, err := s.client.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: string(payload)},
		},
		Temperature:    0.2,
		MaxTokens:      1024,
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return entities.Summary{}, fmt.Errorf("%w: %w", entities.ErrSummaryGeneration, err)
	}

	summary, err := parseSummary(content)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("enrollment.summarizer.llm.unparseable",
				zap.Int("content_length", len(content)),
				zap.Error(err),
			)
		}
		return entities.Summary{}, fmt.Errorf("%w: %w", entities.ErrSummaryGeneration, err)
	}
	return summary, nil
}

// parseSummary decodes the model reply, tolerating markdown code fences
func parseSummary(content string) (entities.Summary, error) {
	content = extractJSON(content)
	if content == "" {
		return entities.Summary{}, fmt.Errorf("empty model reply")
	}

	var summary entities.Summary
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return entities.Summary{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	areas := make([]entities.FocusArea, 0, len(summary.FocusAreas))
	for _, fa := range summary.FocusAreas {
		fa.Category = strings.TrimSpace(fa.Category)
		if fa.Category == "" {
			continue
		}
		areas = append(areas, fa)
	}
	summary.FocusAreas = areas

	return summary.Normalize(), nil
}

func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
