// Package models contains shared data models used across the LendIntake codebase.
package models

import "context"

// TextProvider is the core interface that all AI integrations must implement.
// Never call specific AI providers directly — always inject this interface.
type TextProvider interface {
	// Generate runs a single text-generation call and returns the raw model output.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// Describe extracts text and relevant detail from binary content (images,
	// and PDFs when no native text extractor is available).
	Describe(ctx context.Context, content []byte, mediaType string) (string, error)
	// Name returns the provider identifier (e.g., "openai", "ollama").
	Name() string
}

// GenerateRequest is the input to a text-generation call.
type GenerateRequest struct {
	System      string
	User        string
	JSONMode    bool // request strictly JSON output
	Temperature float64
	MaxTokens   int // 0 means provider default
}

// PDFExtractor extracts plain text from PDF bytes without calling a model.
// Optional; the normalizer falls back to TextProvider.Describe when none is
// wired or extraction fails.
type PDFExtractor interface {
	ExtractText(pdfBytes []byte) (string, error)
}

// Attachment is one user-uploaded file submitted alongside free text.
// It lives only for the duration of a single analysis call.
type Attachment struct {
	Filename  string
	MediaType string
	Content   []byte
}
