package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/lendintake/internal/ai"
	"github.com/mwhitfield/lendintake/internal/api/handler"
	"github.com/mwhitfield/lendintake/pkg/models"
)

type mockAnalyzer struct {
	analyzeFunc func(ctx context.Context, rawText string, attachments []models.Attachment) (*models.AnalysisResult, error)
	gotText     string
	gotFiles    []models.Attachment
}

func (m *mockAnalyzer) Analyze(ctx context.Context, rawText string, attachments []models.Attachment) (*models.AnalysisResult, error) {
	m.gotText = rawText
	m.gotFiles = attachments
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, rawText, attachments)
	}
	return &models.AnalysisResult{
		ExtractedData: models.FormData{Title: "Generated title"},
		Confidence:    0.8,
		RequestType:   models.RequestTypeChange,
	}, nil
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestAnalyze_JSONBody(t *testing.T) {
	m := &mockAnalyzer{}
	h := handler.NewAnalyzeHandler(m)

	w := postJSON(t, h, map[string]string{"text": "Encompass is not working for our underwriting team"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Encompass is not working for our underwriting team", m.gotText)

	data := dataField(t, w)
	assert.Equal(t, "FORM", data["route"])
}

func TestAnalyze_SupportRedirect(t *testing.T) {
	m := &mockAnalyzer{
		analyzeFunc: func(_ context.Context, _ string, _ []models.Attachment) (*models.AnalysisResult, error) {
			return &models.AnalysisResult{
				RequestType:           models.RequestTypeSupport,
				RequestTypeConfidence: 0.9,
				ScenarioTypes:         []string{"systemChanges"},
				SuggestedDepartments:  []string{"IT"},
			}, nil
		},
	}
	h := handler.NewAnalyzeHandler(m)

	w := postJSON(t, h, map[string]string{"text": "Encompass login broken, need help now"})

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "SUPPORT_REDIRECT", data["route"])
	assert.Equal(t, []any{"IT"}, data["suggestedDepartments"])
}

func TestAnalyze_MergesWizardAnswers(t *testing.T) {
	m := &mockAnalyzer{}
	h := handler.NewAnalyzeHandler(m)

	w := postJSON(t, h, map[string]any{
		"text": "Need pricing engine update",
		"answers": map[string]string{
			"timeline": "End of Q3",
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, m.gotText, "Need pricing engine update")
	assert.Contains(t, m.gotText, "**Additional Details from Clarification:**")
	assert.Contains(t, m.gotText, "End of Q3")
}

func TestAnalyze_MultipartWithFiles(t *testing.T) {
	m := &mockAnalyzer{}
	h := handler.NewAnalyzeHandler(m)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	require.NoError(t, mp.WriteField("text", "see attached screenshot"))

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Disposition", `form-data; name="files"; filename="shot.png"`)
	fileHeader.Set("Content-Type", "image/png")
	part, err := mp.CreatePart(fileHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	req := httptest.NewRequest("POST", "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, m.gotFiles, 1)
	assert.Equal(t, "shot.png", m.gotFiles[0].Filename)
	assert.Equal(t, "image/png", m.gotFiles[0].MediaType)
	assert.Equal(t, []byte("fake-png-bytes"), m.gotFiles[0].Content)
}

func TestAnalyze_TooManyFiles(t *testing.T) {
	m := &mockAnalyzer{}
	h := handler.NewAnalyzeHandler(m)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for i := 0; i < 11; i++ {
		part, err := mp.CreateFormFile("files", "f.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, mp.Close())

	req := httptest.NewRequest("POST", "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "TOO_MANY_FILES")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	m := &mockAnalyzer{
		analyzeFunc: func(_ context.Context, _ string, _ []models.Attachment) (*models.AnalysisResult, error) {
			return nil, ai.ErrEmptyInput
		},
	}
	h := handler.NewAnalyzeHandler(m)

	w := postJSON(t, h, map[string]string{"text": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_INPUT")
}

func TestAnalyze_ProviderTimeout(t *testing.T) {
	m := &mockAnalyzer{
		analyzeFunc: func(_ context.Context, _ string, _ []models.Attachment) (*models.AnalysisResult, error) {
			return nil, ai.ErrInferenceTimeout
		},
	}
	h := handler.NewAnalyzeHandler(m)

	w := postJSON(t, h, map[string]string{"text": "slow request"})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "AI_TIMEOUT")
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	m := &mockAnalyzer{}
	h := handler.NewAnalyzeHandler(m)

	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
