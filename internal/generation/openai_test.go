package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distillapp/distill-server/internal/config"
	domainerrors "github.com/distillapp/distill-server/internal/errors"
)

const validDocumentJSON = `{
	"sectionA": {
		"title": "Why Standing Desks Matter",
		"summary": "Prolonged sitting correlates with poor outcomes.",
		"statistics": [
			{"value": "8h", "label": "average daily sitting"},
			{"value": "22%", "label": "risk reduction"},
			{"value": "5000", "label": "participants"}
		],
		"sources": ["Annals of Internal Medicine, 2023"],
		"conclusions": ["Break up sitting time."]
	},
	"sectionB": {
		"methodology": "Prospective cohort study",
		"participants": "5000 office workers",
		"technicalTerms": ["sedentary behavior"],
		"studyDesign": "Longitudinal observation"
	},
	"sectionC": [
		{"badge": 1, "title": "Take Movement Breaks", "steps": ["Stand every hour"]},
		{"badge": 2, "title": "Walking Meetings", "steps": ["Move 1:1s outside"]},
		{"badge": 3, "title": "Desk Exercises", "steps": ["Stretch shoulders"]}
	]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// newTestClient points an OpenAIClient at a stub completions server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIClient(config.GenerationConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		Model:     "gpt-4o",
		MaxTokens: 4096,
		Timeout:   5 * time.Second,
	}, testLogger())
}

// completionResponse wraps content in the chat completions envelope.
func completionResponse(content string) []byte {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}, "finish_reason": "stop"},
		},
		"usage": map[string]any{"prompt_tokens": 100, "completion_tokens": 200},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestGenerate_Success(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(completionResponse(validDocumentJSON))
	})

	content, err := client.Generate(context.Background(), "paper text", "researcher note")
	require.NoError(t, err)

	assert.Equal(t, "Why Standing Desks Matter", content.Overview.Title)
	assert.Len(t, content.Overview.Statistics, 3)
	assert.Equal(t, "Prospective cohort study", content.Methods.Methodology)
	assert.Len(t, content.Solutions, 3)
	assert.Equal(t, 2, content.Solutions[1].Badge)

	// Request carried the fixed prompts and JSON response format.
	assert.Equal(t, "gpt-4o", gotReq.Model)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "paper text")
	assert.Contains(t, gotReq.Messages[1].Content, "researcher note")
}

func TestGenerate_APIStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "paper", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_UnparseableContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse("this is not JSON"))
	})

	_, err := client.Generate(context.Background(), "paper", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestGenerate_IncompleteDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Only two solution pages; validation must reject the document.
		w.Write(completionResponse(`{
			"sectionA": {
				"title": "T", "summary": "S",
				"statistics": [
					{"value": "1", "label": "a"},
					{"value": "2", "label": "b"},
					{"value": "3", "label": "c"}
				],
				"sources": ["src"], "conclusions": ["c"]
			},
			"sectionB": {"methodology": "m", "participants": "p", "technicalTerms": ["t"], "studyDesign": "d"},
			"sectionC": [
				{"badge": 1, "title": "A", "steps": ["s"]},
				{"badge": 2, "title": "B", "steps": ["s"]}
			]
		}`))
	})

	_, err := client.Generate(context.Background(), "paper", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
	assert.Contains(t, err.Error(), "solution pages")
}

func TestGenerate_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Generate(context.Background(), "paper", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content generated")
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := NewOpenAIClient(config.GenerationConfig{
		BaseURL:   "https://api.openai.com/v1",
		Model:     "gpt-4o",
		MaxTokens: 4096,
		Timeout:   time.Second,
	}, testLogger())

	_, err := client.Generate(context.Background(), "paper", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key")
}
