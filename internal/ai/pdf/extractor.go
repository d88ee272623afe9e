// Package pdf extracts plain text from PDF attachments.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	ledongpdf "github.com/ledongthuc/pdf"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// ErrNoText is returned when a PDF contains no extractable text, typically
// scanned documents without an OCR layer.
var ErrNoText = errors.New("pdf contains no extractable text")

// Extractor reads text content from PDF bytes.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the plain text content of the PDF.
func (e *Extractor) ExtractText(content []byte) (string, error) {
	reader, err := ledongpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

var _ models.PDFExtractor = (*Extractor)(nil)
