// Package generator calls the hosted chat-completion API.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"papertutor/internal/config"
	"papertutor/internal/models"
)

// The system instruction is fixed: the assistant must stay grounded in the
// supplied context.
const systemInstruction = "You are an academic AI research assistant.\n" +
	"Provide clear, structured, medium-length explanations.\n" +
	"Do not hallucinate information.\n" +
	"Base responses only on provided context."

// Result is the outcome of one generation call. API failures travel here as
// data rather than as Go errors, so a bad status never kills the interactive
// flow; transport failures stay ordinary errors.
type Result struct {
	Content string
	ErrBody string
}

// Failed reports whether the API answered with a non-success status.
func (r Result) Failed() bool { return r.ErrBody != "" }

// Text flattens the result for display. Failed calls render as
// "Error: <raw response body>".
func (r Result) Text() string {
	if r.Failed() {
		return "Error: " + r.ErrBody
	}
	return r.Content
}

// Client sends synchronous, single-shot completion requests. No retry, no
// streaming, no timeout: a hung call blocks the interaction, which is
// acceptable for this single-user tool.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient reads the bearer token from the configured environment variable
// once. An absent token is not validated locally; the remote API rejects the
// calls instead.
func NewClient(cfg *config.GenerationConfig) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      os.Getenv(cfg.APIKeyEnv),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt under the fixed system instruction and returns
// the completion text, or a Result carrying the raw error body on a
// non-success status.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (Result, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: models.RoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("generation request failed")
		return Result{ErrBody: string(raw)}, nil
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{}, fmt.Errorf("decoding completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return Result{}, errors.New("completion returned no choices")
	}
	return Result{Content: decoded.Choices[0].Message.Content}, nil
}
