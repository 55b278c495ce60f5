// Package extractor pulls per-page text out of uploaded documents.
package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"

	"papertutor/internal/cleaner"
	"papertutor/internal/models"
)

// minPageChars drops near-empty pages after cleaning.
const minPageChars = 100

// ExtractFile dispatches on the file extension and returns the cleaned,
// 1-indexed page sequence. Unsupported extensions are an error; documents
// that simply contain no usable text are not (the result is empty).
func ExtractFile(path string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ExtractPDF(data)
	case ".docx":
		return extractDOCX(path)
	case ".txt":
		return extractText(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// ExtractPDF extracts cleaned text per page. Pages with no extractable text
// or that clean down to <= 100 characters are skipped silently. A document
// that cannot be parsed at all yields an empty page sequence, not an error;
// downstream stages treat that as "nothing uploaded".
func ExtractPDF(data []byte) ([]models.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Warn().Err(err).Msg("unparseable PDF, treating as empty")
		return nil, nil
	}

	var pages []models.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			log.Debug().Int("page", i).Err(err).Msg("skipping unextractable page")
			continue
		}
		if p, ok := makePage(i, raw); ok {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// extractDOCX reads the whole document body as a single page; the format
// carries no page boundaries.
func extractDOCX(path string) ([]models.Page, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	if p, ok := makePage(1, content); ok {
		return []models.Page{p}, nil
	}
	return nil, nil
}

func extractText(path string) ([]models.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if p, ok := makePage(1, string(data)); ok {
		return []models.Page{p}, nil
	}
	return nil, nil
}

func makePage(number int, raw string) (models.Page, bool) {
	if strings.TrimSpace(raw) == "" {
		return models.Page{}, false
	}
	text := cleaner.Clean(raw)
	if utf8.RuneCountInString(text) <= minPageChars {
		return models.Page{}, false
	}
	return models.Page{PageNumber: number, Text: text}, true
}
