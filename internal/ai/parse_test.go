package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisResponse(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		raw := `{
			"title": "Update DTI limits",
			"description": "Raise max DTI for jumbo products",
			"softwarePlatforms": ["Encompass"],
			"impactedAreas": ["Underwriting"],
			"channels": ["Retail"],
			"missingFields": ["channels"],
			"clarificationQuestions": ["Which products?"],
			"confidence": 0.8,
			"requestType": "change",
			"requestTypeConfidence": 0.95,
			"requestTypeReason": "System configuration change"
		}`

		resp, err := parseAnalysisResponse(raw)
		require.NoError(t, err)
		require.NotNil(t, resp.Title)
		assert.Equal(t, "Update DTI limits", *resp.Title)
		assert.Equal(t, []string{"Encompass"}, resp.SoftwarePlatforms)
		assert.Equal(t, "change", resp.RequestType)
	})

	t.Run("null title and description allowed", func(t *testing.T) {
		raw := `{
			"title": null,
			"description": null,
			"softwarePlatforms": [],
			"impactedAreas": [],
			"channels": [],
			"confidence": 0.5,
			"requestType": "support",
			"requestTypeConfidence": 0.6
		}`

		resp, err := parseAnalysisResponse(raw)
		require.NoError(t, err)
		assert.Nil(t, resp.Title)
		assert.Nil(t, resp.Description)
	})

	t.Run("missing required field rejected", func(t *testing.T) {
		raw := `{"softwarePlatforms": [], "impactedAreas": [], "channels": [], "confidence": 0.5}`

		_, err := parseAnalysisResponse(raw)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unknown request type rejected", func(t *testing.T) {
		raw := `{
			"softwarePlatforms": [],
			"impactedAreas": [],
			"channels": [],
			"confidence": 0.5,
			"requestType": "escalation",
			"requestTypeConfidence": 0.6
		}`

		_, err := parseAnalysisResponse(raw)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("wrong field type rejected", func(t *testing.T) {
		raw := `{
			"softwarePlatforms": "Encompass",
			"impactedAreas": [],
			"channels": [],
			"confidence": 0.5,
			"requestType": "change",
			"requestTypeConfidence": 0.6
		}`

		_, err := parseAnalysisResponse(raw)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("not JSON at all", func(t *testing.T) {
		_, err := parseAnalysisResponse("I could not produce JSON, sorry")
		assert.Error(t, err)
	})
}

func TestToAnalysisResult_Defaults(t *testing.T) {
	resp := &analysisResponse{
		Confidence:            0.4,
		RequestType:           "training",
		RequestTypeConfidence: 0.9,
	}

	result := resp.toAnalysisResult()

	assert.Empty(t, result.ExtractedData.Title)
	assert.NotNil(t, result.ExtractedData.SoftwarePlatforms)
	assert.NotNil(t, result.MissingFields)
	assert.NotNil(t, result.ClarificationQuestions)
	assert.Equal(t, "training", string(result.RequestType))
}

func TestToAnalysisResult_TruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("a", 300)
	resp := &analysisResponse{
		Title:                 &long,
		RequestType:           "change",
		RequestTypeConfidence: 0.9,
	}

	result := resp.toAnalysisResult()
	assert.Len(t, result.ExtractedData.Title, maxTitleBytes)
}

func TestFilterVocabulary(t *testing.T) {
	allowed := []string{"Byte", "Encompass", "Calyx Point"}

	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"all allowed", []string{"Byte", "Encompass"}, []string{"Byte", "Encompass"}},
		{"unknown dropped", []string{"Byte", "Photoshop"}, []string{"Byte"}},
		{"case sensitive", []string{"byte"}, []string{}},
		{"empty input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterVocabulary(tt.values, allowed))
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 0.0, clamp01(0))
	assert.Equal(t, 0.7, clamp01(0.7))
	assert.Equal(t, 1.0, clamp01(1))
	assert.Equal(t, 1.0, clamp01(3.2))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abc", truncateString("abcdef", 3))

	// Multi-byte runes are never split.
	s := "héllo"
	got := truncateString(s, 2)
	assert.Equal(t, "h", got)
}
