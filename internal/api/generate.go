package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/logger"
	"github.com/diogo/bharatgpt/internal/models"
)

const opGenerate = "generate content"

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfigJSON struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []content             `json:"contents"`
	GenerationConfig *generationConfigJSON `json:"generationConfig,omitempty"`
}

// buildPayload creates the JSON body for a single-turn generateContent call
func buildPayload(prompt string, gen GenerationConfig) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if !gen.empty() {
		req.GenerationConfig = &generationConfigJSON{
			Temperature:     gen.Temperature,
			MaxOutputTokens: gen.MaxOutputTokens,
		}
	}
	return json.Marshal(req)
}

// Generate sends prompt and returns the parsed response. Every failure is a
// *errors.ProviderError wrapping the typed cause.
func (c *Client) Generate(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	out, err := c.doGenerate(ctx, prompt)
	if err != nil {
		return nil, apierrors.NewProviderError(opGenerate, err)
	}
	return out, nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	if c.apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := buildPayload(prompt, c.generation)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.APIKeyHeader, c.apiKey)

	model := c.GetModel().Name
	logger.DebugCF("api", "Sending generateContent request", map[string]interface{}{
		"model":        model,
		"prompt_chars": len(prompt),
	})
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Limit error body to 4KB for safety
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, models.MaxErrorBodySize))
		return nil, statusError(resp.StatusCode, endpoint, errorBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, endpoint, err)
	}

	out, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	logger.DebugCF("api", "Received generateContent response", map[string]interface{}{
		"model":         model,
		"finish_reason": out.FinishReason(),
		"total_tokens":  out.Usage.TotalTokens,
		"duration_ms":   time.Since(started).Milliseconds(),
	})

	return out, nil
}

func transportError(ctx context.Context, endpoint string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(err.Error())
	}
	return apierrors.NewNetworkError(opGenerate, endpoint, err)
}

// statusError maps a non-200 response to a typed error
func statusError(status int, endpoint string, body []byte) error {
	message := gjson.GetBytes(body, PathErrorMessage).String()
	if message == "" {
		message = "generate content failed"
	}

	code := gjson.GetBytes(body, PathErrorStatus).String()

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden,
		code == "UNAUTHENTICATED" || code == "PERMISSION_DENIED":
		return apierrors.NewAuthError(message)
	case status == http.StatusBadRequest && isInvalidKey(body):
		return apierrors.NewAuthError(message)
	case status == http.StatusTooManyRequests, code == "RESOURCE_EXHAUSTED":
		return apierrors.NewUsageLimitError(message)
	default:
		return apierrors.NewAPIErrorWithBody(status, endpoint, message, string(body))
	}
}

func isInvalidKey(body []byte) bool {
	for _, reason := range gjson.GetBytes(body, PathErrorReasons).Array() {
		if reason.String() == "API_KEY_INVALID" {
			return true
		}
	}
	return bytes.Contains(body, []byte("API_KEY_INVALID"))
}

// parseResponse parses a generateContent response body
func parseResponse(body []byte) (*models.ModelOutput, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	if reason := parsed.Get(PathPromptBlock).String(); reason != "" {
		return nil, apierrors.NewBlockedError(reason)
	}

	candidateList := parsed.Get(PathCandidates)
	if !candidateList.IsArray() || len(candidateList.Array()) == 0 {
		return nil, apierrors.NewParseError("no candidates found", PathCandidates)
	}

	var candidates []models.Candidate
	candidateList.ForEach(func(_, cand gjson.Result) bool {
		var sb strings.Builder
		for _, text := range cand.Get(PathCandPartTexts).Array() {
			sb.WriteString(text.String())
		}
		candidates = append(candidates, models.Candidate{
			Text:         sb.String(),
			FinishReason: cand.Get(PathCandFinishReason).String(),
		})
		return true
	})

	out := &models.ModelOutput{
		Candidates: candidates,
		Chosen:     0,
		Usage: models.Usage{
			PromptTokens:    int(parsed.Get(PathUsagePrompt).Int()),
			CandidateTokens: int(parsed.Get(PathUsageCandidates).Int()),
			TotalTokens:     int(parsed.Get(PathUsageTotal).Int()),
		},
		ModelVersion: parsed.Get(PathModelVersion).String(),
	}

	if strings.TrimSpace(out.Text()) == "" {
		if reason := out.FinishReason(); blockedFinishReasons[reason] {
			return nil, apierrors.NewBlockedError(reason)
		}
		return nil, apierrors.NewParseError("no text in response", "candidates.0."+PathCandParts)
	}

	return out, nil
}
