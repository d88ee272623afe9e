package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// contentSeparator joins the raw text and per-attachment extractions into the
// single blob shown to the model.
const contentSeparator = "\n\n---\n\n"

// normalize merges raw text with per-attachment extracted content into one
// text blob. Attachments are processed concurrently but joined back in upload
// order, raw text first. A failed extraction contributes a placeholder entry
// naming the file; it never aborts the batch.
func (s *AnalysisService) normalize(ctx context.Context, rawText string, attachments []models.Attachment) string {
	parts := make([]string, len(attachments))

	var wg sync.WaitGroup
	for i, att := range attachments {
		wg.Add(1)
		go func(i int, att models.Attachment) {
			defer wg.Done()
			parts[i] = s.extractAttachment(ctx, att)
		}(i, att)
	}
	wg.Wait()

	sections := make([]string, 0, len(attachments)+1)
	if rawText != "" {
		sections = append(sections, rawText)
	}
	sections = append(sections, parts...)
	return strings.Join(sections, contentSeparator)
}

// extractAttachment dispatches one attachment by declared media type and
// returns its labeled extracted text, or a failure placeholder.
func (s *AnalysisService) extractAttachment(ctx context.Context, att models.Attachment) string {
	text, err := s.extractContent(ctx, att)
	if err != nil {
		slog.Error("attachment extraction failed",
			"filename", att.Filename,
			"media_type", att.MediaType,
			"error", err,
		)
		return fmt.Sprintf("Failed to process file: %s", att.Filename)
	}
	return text
}

func (s *AnalysisService) extractContent(ctx context.Context, att models.Attachment) (string, error) {
	switch {
	case strings.HasPrefix(att.MediaType, "image/"):
		text, err := s.provider.Describe(ctx, att.Content, att.MediaType)
		if err != nil {
			return "", fmt.Errorf("describing image: %w", err)
		}
		return fmt.Sprintf("Image Analysis (%s):\n%s", att.Filename, text), nil

	case att.MediaType == "application/pdf":
		if s.pdf != nil {
			if text, err := s.pdf.ExtractText(att.Content); err == nil {
				return fmt.Sprintf("PDF Content (%s):\n%s", att.Filename, text), nil
			} else {
				slog.Warn("native PDF extraction failed, falling back to vision",
					"filename", att.Filename, "error", err)
			}
		}
		text, err := s.provider.Describe(ctx, att.Content, att.MediaType)
		if err != nil {
			return "", fmt.Errorf("describing pdf: %w", err)
		}
		return fmt.Sprintf("PDF Content (%s):\n%s", att.Filename, text), nil

	default:
		// Plain text and word-processor documents are read as-is.
		return fmt.Sprintf("Text File (%s):\n%s", att.Filename, string(att.Content)), nil
	}
}
