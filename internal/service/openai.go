package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/domain"
)

// OpenAIService calls the OpenAI Responses API for a statically chosen
// model. No retries: any transport or API error propagates to the caller.
type OpenAIService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{
		apiKey:     apiKey,
		baseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Turn is one role-tagged content unit sent to the model. Content is a
// string for text turns or a part list for multimodal turns.
type Turn struct {
	Role    domain.Role `json:"role"`
	Content any         `json:"content"`
}

// Completion is the model's reply with its token usage.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

type responsesRequest struct {
	Model string `json:"model"`
	Input []Turn `json:"input"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func systemPreamble(firstName string, now time.Time) string {
	return "You are a helpful assistant. " +
		"Our major users talk in Uzbek/Russian. " +
		"Most of them, most probably, are Muslim. " +
		fmt.Sprintf("User first name is %s.", firstName) +
		fmt.Sprintf("Current date (tell this if user asks): %s.", now.Format("2006-01-02")) +
		fmt.Sprintf("Current time (tell this if user asks): %s.", now.Format("03:04 PM")) +
		"Return simple Telegram-compatible HTML using only <b>, <i>, <pre>, <code>, \\n, and <a>"
}

// Dispatch sends the system preamble plus the assembled context to the
// completion API and blocks until a response or failure arrives.
func (s *OpenAIService) Dispatch(ctx context.Context, model string, turns []Turn, firstName string, now time.Time) (*Completion, error) {
	input := make([]Turn, 0, len(turns)+1)
	input = append(input, Turn{Role: domain.RoleSystem, Content: systemPreamble(firstName, now)})
	input = append(input, turns...)

	payload, err := json.Marshal(responsesRequest{Model: model, Input: input})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed responsesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, item := range parsed.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text.WriteString(part.Text)
			}
		}
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return nil, domain.ErrEmptyCompletion
	}

	return &Completion{
		Text:         out,
		InputTokens:  parsed.Usage.InputTokens,
		OutputTokens: parsed.Usage.OutputTokens,
	}, nil
}
