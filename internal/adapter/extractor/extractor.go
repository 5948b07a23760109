// Package extractor turns uploaded study documents into plain text.
package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"

	"go.uber.org/zap"
)

// Extractor reads one document format.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
	SupportedFormats() []string
}

// TextExtractor dispatches on file extension. Unknown extensions produce empty
// text so the caller can fall back to pasted notes.
type TextExtractor struct {
	extractors map[string]Extractor
}

func New() *TextExtractor {
	r := &TextExtractor{extractors: make(map[string]Extractor)}
	for _, e := range []Extractor{&PDFExtractor{}, &DOCXExtractor{}} {
		r.Register(e)
	}
	return r
}

func (r *TextExtractor) Register(e Extractor) {
	for _, f := range e.SupportedFormats() {
		r.extractors[f] = e
	}
}

// Supports reports whether filename has an extension with a registered extractor.
func (r *TextExtractor) Supports(filename string) bool {
	_, ok := r.extractors[format(filename)]
	return ok
}

// Extract returns the document's text. Read failures of a supported format
// come back as an EXTRACTION_FAILED domain error.
func (r *TextExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	e, ok := r.extractors[format(filename)]
	if !ok {
		logger.Get().Debug("No extractor for upload, returning empty text", zap.String("filename", filename))
		return "", nil
	}
	text, err := e.Extract(ctx, data)
	if err != nil {
		logger.Get().Warn("Text extraction failed", zap.String("filename", filename), zap.Error(err))
		return "", domain.NewExtractionFailedError(filename, err)
	}
	logger.Get().Debug("Extracted text from upload",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len(text)))
	return text, nil
}

func format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
