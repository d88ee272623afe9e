package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// analysisResponseSchema is the required shape of the model's analysis
// output. Validation happens before decoding: an unknown shape is rejected
// outright rather than trusted field-by-field.
const analysisResponseSchema = `{
  "type": "object",
  "required": ["softwarePlatforms", "impactedAreas", "channels", "confidence", "requestType", "requestTypeConfidence"],
  "properties": {
    "title": {"type": ["string", "null"]},
    "description": {"type": ["string", "null"]},
    "softwarePlatforms": {"type": "array", "items": {"type": "string"}},
    "impactedAreas": {"type": "array", "items": {"type": "string"}},
    "channels": {"type": "array", "items": {"type": "string"}},
    "missingFields": {"type": "array", "items": {"type": "string"}},
    "clarificationQuestions": {"type": "array", "items": {"type": "string"}},
    "confidence": {"type": "number"},
    "requestType": {"type": "string", "enum": ["change", "support", "training"]},
    "requestTypeConfidence": {"type": "number"},
    "requestTypeReason": {"type": "string"}
  }
}`

var analysisSchema = gojsonschema.NewStringLoader(analysisResponseSchema)

// analysisResponse mirrors the JSON the model is instructed to return.
type analysisResponse struct {
	Title                  *string  `json:"title"`
	Description            *string  `json:"description"`
	SoftwarePlatforms      []string `json:"softwarePlatforms"`
	ImpactedAreas          []string `json:"impactedAreas"`
	Channels               []string `json:"channels"`
	MissingFields          []string `json:"missingFields"`
	ClarificationQuestions []string `json:"clarificationQuestions"`
	Confidence             float64  `json:"confidence"`
	RequestType            string   `json:"requestType"`
	RequestTypeConfidence  float64  `json:"requestTypeConfidence"`
	RequestTypeReason      string   `json:"requestTypeReason"`
}

// parseAnalysisResponse validates the raw model output against the response
// schema and decodes it into a typed struct.
func parseAnalysisResponse(raw string) (*analysisResponse, error) {
	result, err := gojsonschema.Validate(analysisSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validating response: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(details, "; "))
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// filterVocabulary drops every value not exactly present in the allowed
// list. The model is instructed not to invent values; this is the
// defense-in-depth pass that makes the closed vocabularies an invariant
// rather than a suggestion. Filtered values are not an error.
func filterVocabulary(values, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}

	kept := make([]string, 0, len(values))
	for _, v := range values {
		if set[v] {
			kept = append(kept, v)
		}
	}
	return kept
}

// toAnalysisResult converts a validated response into the immutable result
// record, applying the vocabulary post-filter and confidence clamps.
func (r *analysisResponse) toAnalysisResult() *models.AnalysisResult {
	opts := models.IntakeFormOptions()

	out := &models.AnalysisResult{
		ExtractedData: models.FormData{
			SoftwarePlatforms: filterVocabulary(r.SoftwarePlatforms, opts.SoftwarePlatforms),
			ImpactedAreas:     filterVocabulary(r.ImpactedAreas, opts.ImpactedAreas),
			Channels:          filterVocabulary(r.Channels, opts.Channels),
		},
		MissingFields:          orEmpty(r.MissingFields),
		Confidence:             clamp01(r.Confidence),
		ClarificationQuestions: orEmpty(r.ClarificationQuestions),
		RequestType:            models.RequestType(r.RequestType),
		RequestTypeConfidence:  clamp01(r.RequestTypeConfidence),
		RequestTypeReason:      r.RequestTypeReason,
	}

	if r.Title != nil {
		out.ExtractedData.Title = truncateString(*r.Title, maxTitleBytes)
	}
	if r.Description != nil {
		out.ExtractedData.Description = *r.Description
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
