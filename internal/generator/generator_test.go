package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"papertutor/internal/config"
	"papertutor/internal/models"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      "test-key",
		model:       "test-model",
		temperature: 0.3,
		httpClient:  &http.Client{},
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"the answer"}}]}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Generate(context.Background(), "the prompt", 400)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("result unexpectedly failed: %q", result.ErrBody)
	}
	if result.Text() != "the answer" {
		t.Errorf("Text() = %q, want %q", result.Text(), "the answer")
	}
	if gotReq.Model != "test-model" || gotReq.Temperature != 0.3 || gotReq.MaxTokens != 400 {
		t.Errorf("request = %+v, want model/temperature/max_tokens preserved", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages = %+v, want fixed system then user", gotReq.Messages)
	}
	if gotReq.Messages[1].Content != "the prompt" {
		t.Errorf("user content = %q", gotReq.Messages[1].Content)
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 400)
	if err != nil {
		t.Fatalf("non-200 must not be a Go error, got %v", err)
	}
	if !result.Failed() {
		t.Fatal("result should report failure")
	}
	if got := result.Text(); got != "Error: rate limited" {
		t.Errorf("Text() = %q, want %q", got, "Error: rate limited")
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	if _, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 400); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Generate(context.Background(), "prompt", 400); err == nil {
		t.Fatal("expected an error for empty choices")
	}
}

func TestResultText(t *testing.T) {
	ok := Result{Content: "fine"}
	if ok.Text() != "fine" || ok.Failed() {
		t.Errorf("success result mishandled: %+v", ok)
	}
	bad := Result{ErrBody: "boom"}
	if bad.Text() != "Error: boom" || !bad.Failed() {
		t.Errorf("failed result mishandled: %+v", bad)
	}
}

func TestNewClientReadsKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_GEN_KEY", "secret")
	client := NewClient(&config.GenerationConfig{
		BaseURL:   "https://example.com/v1/",
		Model:     "m",
		APIKeyEnv: "TEST_GEN_KEY",
	})
	if client.apiKey != "secret" {
		t.Errorf("apiKey = %q, want env value", client.apiKey)
	}
	if client.baseURL != "https://example.com/v1" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", client.baseURL)
	}
}

func TestQuestionPromptLabelsPages(t *testing.T) {
	results := []models.RetrievalResult{
		{Rank: 1, PageNumber: 3, Content: "first passage"},
		{Rank: 2, PageNumber: 7, Content: "second passage"},
	}
	prompt := QuestionPrompt(results, "what is this?")
	for _, want := range []string{"(Page 3) first passage", "(Page 7) second passage", "what is this?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSummaryPromptUsesLeadingChunks(t *testing.T) {
	chunks := make([]models.Chunk, 25)
	for i := range chunks {
		chunks[i] = models.Chunk{PageNumber: 1, Content: "chunk" + string(rune('a'+i))}
	}
	prompt := SummaryPrompt(chunks)
	if !strings.Contains(prompt, "chunka") || !strings.Contains(prompt, "chunkt") {
		t.Error("prompt should include the first 20 chunks")
	}
	if strings.Contains(prompt, "chunku") {
		t.Error("prompt should not include chunks beyond the first 20")
	}
}

func TestSummaryPromptFewChunks(t *testing.T) {
	prompt := SummaryPrompt([]models.Chunk{{Content: "only chunk"}})
	if !strings.Contains(prompt, "only chunk") {
		t.Errorf("prompt missing content:\n%s", prompt)
	}
}
