package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

func testOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &OpenAIService{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}
}

func okResponse(text string, inputTokens, outputTokens int) map[string]any {
	return map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
		"usage": map[string]any{
			"input_tokens":  inputTokens,
			"output_tokens": outputTokens,
		},
	}
}

func TestDispatchParsesCompletion(t *testing.T) {
	var gotBody responsesRequest
	var gotAuth string

	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(okResponse("  Salom!  ", 1000, 500))
	})

	now := time.Date(2025, 8, 14, 15, 4, 0, 0, time.UTC)
	turns := []Turn{{Role: domain.RoleUser, Content: "salom"}}

	comp, err := svc.Dispatch(context.Background(), "o4-mini", turns, "Bek", now)
	require.NoError(t, err)

	assert.Equal(t, "Salom!", comp.Text, "output text is trimmed")
	assert.Equal(t, 1000, comp.InputTokens)
	assert.Equal(t, 500, comp.OutputTokens)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "o4-mini", gotBody.Model)
	require.Len(t, gotBody.Input, 2, "system preamble prepended to context")
	assert.Equal(t, domain.RoleSystem, gotBody.Input[0].Role)
	preamble, ok := gotBody.Input[0].Content.(string)
	require.True(t, ok)
	assert.Contains(t, preamble, "Bek")
	assert.Contains(t, preamble, "2025-08-14")
	assert.Contains(t, preamble, "03:04 PM")
	assert.Equal(t, domain.RoleUser, gotBody.Input[1].Role)
}

func TestDispatchJoinsOutputParts(t *testing.T) {
	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"output": []map[string]any{
				{"type": "reasoning"},
				{
					"type": "message",
					"content": []map[string]any{
						{"type": "output_text", "text": "bir "},
						{"type": "output_text", "text": "ikki"},
					},
				},
			},
			"usage": map[string]any{"input_tokens": 1, "output_tokens": 2},
		})
	})

	comp, err := svc.Dispatch(context.Background(), "o4-mini", nil, "Bek", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "bir ikki", comp.Text)
}

func TestDispatchAPIErrorPropagates(t *testing.T) {
	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "model overloaded", "type": "server_error"},
		})
	})

	_, err := svc.Dispatch(context.Background(), "o4-mini", nil, "Bek", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestDispatchUnexpectedStatus(t *testing.T) {
	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("{}"))
	})

	_, err := svc.Dispatch(context.Background(), "o4-mini", nil, "Bek", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDispatchEmptyOutput(t *testing.T) {
	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"output": []map[string]any{},
			"usage":  map[string]any{"input_tokens": 1, "output_tokens": 0},
		})
	})

	_, err := svc.Dispatch(context.Background(), "o4-mini", nil, "Bek", time.Now())
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestDispatchContextCancellation(t *testing.T) {
	block := make(chan struct{})
	svc := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Dispatch(ctx, "o4-mini", nil, "Bek", time.Now())
	require.Error(t, err)
}
