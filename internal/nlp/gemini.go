package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent API.
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGeminiClient builds a client for the given API key and model name.
// endpoint may be empty to use the production API.
func NewGeminiClient(apiKey, model, endpoint string) *GeminiClient {
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &GeminiClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Extract(ctx context.Context, text string, referenceTime time.Time) (*Extraction, error) {
	prompt := buildPrompt(text, referenceTime)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}

	return parseModelOutput(parsed.Candidates[0].Content.Parts[0].Text)
}

// buildPrompt asks for bare JSON anchored at referenceTime so relative
// phrases ("tomorrow", "next week") resolve against the caller's clock.
func buildPrompt(text string, referenceTime time.Time) string {
	return fmt.Sprintf(`You are a task-management assistant.
Extract a task from the user's sentence.

Context:
- The current time is exactly: %s
- Every relative date (today, tomorrow, next week) must be resolved against that time.
- If no clear title can be extracted, create a short title from the user's text.

INPUT: %q

Respond with bare JSON only, no markdown:
{
  "title": "short task title",
  "deadline": "ISO 8601 string, or null if no time was mentioned"
}`, referenceTime.Format(time.RFC3339), text)
}

// parseModelOutput tolerates markdown code fences the model sometimes wraps
// around its JSON.
func parseModelOutput(raw string) (*Extraction, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var out struct {
		Title    string  `json:"title"`
		Deadline *string `json:"deadline"`
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	result := &Extraction{Title: out.Title}
	if out.Deadline != nil && *out.Deadline != "" {
		t, err := time.Parse(time.RFC3339, *out.Deadline)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model deadline %q: %w", *out.Deadline, err)
		}
		result.Deadline = &t
	}
	return result, nil
}
