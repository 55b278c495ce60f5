// Package session orchestrates one in-memory conversation over one document.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"papertutor/internal/chunker"
	"papertutor/internal/config"
	"papertutor/internal/embedding"
	"papertutor/internal/extractor"
	"papertutor/internal/generator"
	"papertutor/internal/models"
	"papertutor/internal/retriever"
	"papertutor/internal/vectorindex"
)

var (
	// ErrNoDocument rejects questions and summaries before any upload.
	ErrNoDocument = errors.New("no document loaded")
	// ErrNoChunks means the document produced no usable text.
	ErrNoChunks = errors.New("document produced no usable chunks")
)

// Generator is the session-facing slice of the generation client.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (generator.Result, error)
}

// Session holds the per-session state: the active document's index (which
// owns the chunk sequence) and the chat history. Only one document is active
// at a time; loading a new one replaces the index wholesale.
type Session struct {
	embedder  embedding.Embedder
	generator Generator
	cfg       *config.Config

	index        *vectorindex.Index
	documentID   string
	documentName string
	messages     []models.ChatMessage
}

func New(embedder embedding.Embedder, gen Generator, cfg *config.Config) *Session {
	return &Session{embedder: embedder, generator: gen, cfg: cfg}
}

// Load runs the full ingestion pipeline: extract, chunk, embed, index. On
// success the previous document, if any, is discarded together with its
// index. Returns the number of indexed chunks.
func (s *Session) Load(ctx context.Context, path string) (int, error) {
	pages, err := extractor.ExtractFile(path)
	if err != nil {
		return 0, fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}

	chunks := chunker.Split(pages, chunker.Options{
		ChunkSize: s.cfg.RAG.ChunkSize,
		MinChars:  s.cfg.RAG.MinChunkChars,
	})
	if len(chunks) == 0 {
		return 0, ErrNoChunks
	}

	vectors, err := embedding.EmbedChunks(ctx, s.embedder, chunks)
	if err != nil {
		return 0, err
	}

	index, err := vectorindex.Build(chunks, vectors)
	if err != nil {
		return 0, fmt.Errorf("building index: %w", err)
	}

	s.index = index
	s.documentID = uuid.NewString()
	s.documentName = filepath.Base(path)
	log.Info().
		Str("document", s.documentName).
		Str("id", s.documentID).
		Int("pages", len(pages)).
		Int("chunks", len(chunks)).
		Msg("document indexed")
	return len(chunks), nil
}

// Ask answers a question grounded in retrieved context and records both
// sides of the exchange in the history. The returned answer may be a
// flattened API error message; the session stays usable either way.
func (s *Session) Ask(ctx context.Context, question string) (string, []models.RetrievalResult, error) {
	if !s.HasDocument() {
		return "", nil, ErrNoDocument
	}

	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleUser, Content: question})

	retrieved, err := retriever.Retrieve(ctx, s.embedder, s.index, question, s.cfg.RAG.TopK)
	if err != nil {
		return "", nil, err
	}

	prompt := generator.QuestionPrompt(retrieved, question)
	result, err := s.generator.Generate(ctx, prompt, s.cfg.Generation.AnswerMaxTokens)
	if err != nil {
		return "", nil, err
	}

	answer := result.Text()
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: answer})
	return answer, retrieved, nil
}

// Summarize generates a structured summary from the paper's leading chunks
// at the larger output budget and appends it to the history.
func (s *Session) Summarize(ctx context.Context) (string, error) {
	if !s.HasDocument() {
		return "", ErrNoDocument
	}

	prompt := generator.SummaryPrompt(s.index.Chunks())
	result, err := s.generator.Generate(ctx, prompt, s.cfg.Generation.SummaryMaxTokens)
	if err != nil {
		return "", err
	}

	summary := "## Structured Summary\n\n" + result.Text()
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: summary})
	return summary, nil
}

// Clear wipes the conversation. The loaded document stays active.
func (s *Session) Clear() { s.messages = nil }

func (s *Session) HasDocument() bool { return s.index != nil }

func (s *Session) DocumentName() string { return s.documentName }

// History returns the conversation in order.
func (s *Session) History() []models.ChatMessage { return s.messages }
