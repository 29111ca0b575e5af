package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/pkg/ai"
)

type fakeCompleter struct {
	reply string
	err   error
	got   ai.ChatRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.ChatRequest) (string, error) {
	f.got = req
	return f.reply, f.err
}

func TestLLMSummarizer_ParsesFencedReply(t *testing.T) {
	client := &fakeCompleter{reply: "```json\n{\"focus_areas\":[{\"category\":\"Motor Skills\",\"reason\":\"Parent noted clumsiness.\"}],\"interests\":\"Bikes\"}\n```"}
	s := NewLLMSummarizer(client, nil)

	got, err := s.Summarize(context.Background(), entities.DecodeAnswerSet([]byte(`{"concerns":["Clumsiness"],"interests":"Bikes"}`)))
	require.NoError(t, err)

	assert.Equal(t, []entities.FocusArea{{Category: entities.CategoryMotor, Reason: "Parent noted clumsiness."}}, got.FocusAreas)
	assert.Equal(t, []string{}, got.Strengths)
	assert.Equal(t, "Bikes", got.Interests)

	require.Len(t, client.got.Messages, 2)
	assert.Equal(t, "system", client.got.Messages[0].Role)
	assert.Contains(t, client.got.Messages[1].Content, "Clumsiness")
	require.NotNil(t, client.got.ResponseFormat)
	assert.Equal(t, "json_object", client.got.ResponseFormat.Type)
}

func TestLLMSummarizer_DefaultsMissingFields(t *testing.T) {
	s := NewLLMSummarizer(&fakeCompleter{reply: `{"focus_areas":[{"category":" ","reason":"x"}]}`}, nil)

	got, err := s.Summarize(context.Background(), entities.AnswerSet{})
	require.NoError(t, err)
	assert.Equal(t, []entities.FocusArea{}, got.FocusAreas)
	assert.Equal(t, entities.InterestsNotSpecified, got.Interests)
}

func TestLLMSummarizer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeCompleter
	}{
		{name: "client error", client: &fakeCompleter{err: errors.New("rate limited")}},
		{name: "not json", client: &fakeCompleter{reply: "Sure! Here is the summary."}},
		{name: "empty reply", client: &fakeCompleter{reply: "```json\n```"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMSummarizer(tt.client, nil).Summarize(context.Background(), entities.AnswerSet{})
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrSummaryGeneration)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
}
