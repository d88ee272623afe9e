// Package handler contains the HTTP handlers for the intake API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/mwhitfield/lendintake/internal/ai"
	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/internal/intake"
	"github.com/mwhitfield/lendintake/internal/wizard"
	"github.com/mwhitfield/lendintake/pkg/models"
)

const (
	maxUploadFiles = 10
	maxFileBytes   = 10 << 20 // 10 MiB per file
	maxFormMemory  = 32 << 20
)

// Analyzer defines the interface the analyze handler depends on.
type Analyzer interface {
	Analyze(ctx context.Context, rawText string, attachments []models.Attachment) (*models.AnalysisResult, error)
}

// AnalyzeResponse is the analysis result plus the routing decision.
type AnalyzeResponse struct {
	*models.AnalysisResult
	Route intake.RouteTarget `json:"route"`
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analyze.
// It accepts multipart form data with a "text" field, optional "answers"
// (a JSON object of wizard answers), and up to 10 attached files, or a plain
// JSON body with the same fields.
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, answers, attachments, ok := parseAnalyzeRequest(w, r)
		if !ok {
			return
		}

		if len(answers) > 0 {
			text = wizard.FormatAnswers(text, answers)
		}

		result, err := svc.Analyze(r.Context(), text, attachments)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.JSON(w, AnalyzeResponse{
			AnalysisResult: result,
			Route:          intake.Route(result.RequestType, result.RequestTypeConfidence),
		})
	}
}

func parseAnalyzeRequest(w http.ResponseWriter, r *http.Request) (string, map[string]string, []models.Attachment, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		return parseMultipartAnalyzeRequest(w, r)
	}

	var req struct {
		Text    string            `json:"text"`
		Answers map[string]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return "", nil, nil, false
	}
	return req.Text, req.Answers, nil, true
}

func parseMultipartAnalyzeRequest(w http.ResponseWriter, r *http.Request) (string, map[string]string, []models.Attachment, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", nil)
		return "", nil, nil, false
	}

	text := r.FormValue("text")

	var answers map[string]string
	if raw := r.FormValue("answers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "answers must be a JSON object of strings", nil)
			return "", nil, nil, false
		}
	}

	files := r.MultipartForm.File["files"]
	if len(files) > maxUploadFiles {
		response.Error(w, http.StatusBadRequest, "TOO_MANY_FILES", "At most 10 files may be attached", nil)
		return "", nil, nil, false
	}

	var attachments []models.Attachment
	for _, fh := range files {
		att, err := readAttachment(fh)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_FILE",
				"Could not read uploaded file: "+fh.Filename, nil)
			return "", nil, nil, false
		}
		attachments = append(attachments, att)
	}

	return text, answers, attachments, true
}

func readAttachment(fh *multipart.FileHeader) (models.Attachment, error) {
	if fh.Size > maxFileBytes {
		return models.Attachment{}, errors.New("file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxFileBytes))
	if err != nil {
		return models.Attachment{}, err
	}

	mediaType := fh.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return models.Attachment{
		Filename:  fh.Filename,
		MediaType: mediaType,
		Content:   content,
	}, nil
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrEmptyInput):
		response.Error(w, http.StatusBadRequest, "EMPTY_INPUT",
			"Provide text or at least one attachment to analyze", nil)
	case errors.Is(err, ai.ErrInferenceTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_TIMEOUT",
			"The AI provider did not respond in time", nil)
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
			"The AI provider is not available", nil)
	case errors.Is(err, ai.ErrAnalysisFailed), errors.Is(err, ai.ErrInvalidResponse):
		response.Error(w, http.StatusBadGateway, "ANALYSIS_FAILED",
			"Analysis could not be completed", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
