package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mwhitfield/lendintake/internal/guidelines"
	"github.com/mwhitfield/lendintake/internal/wizard"
	"github.com/mwhitfield/lendintake/pkg/models"
)

const (
	maxTitleBytes = 128

	analysisTemperature = 0.3
	wizardTemperature   = 0.7
	enhanceTemperature  = 0.7

	wizardMaxTokens  = 1000
	enhanceMaxTokens = 1000
	maxWizardCount   = 3
)

// AnalysisService orchestrates content normalization, scenario classification,
// and model-backed extraction into structured intake records.
type AnalysisService struct {
	provider      models.TextProvider
	pdf           models.PDFExtractor
	guidelinesDoc string
	timeout       time.Duration
}

// NewAnalysisService creates a new AnalysisService. pdf may be nil; the
// normalizer then routes PDFs through the vision path. guidelinesDoc may be
// empty when the reference document is unavailable.
func NewAnalysisService(provider models.TextProvider, pdf models.PDFExtractor, guidelinesDoc string, timeout time.Duration) *AnalysisService {
	if guidelinesDoc == "" {
		slog.Warn("guidelines document not available; wizard prompts will omit it")
	}
	return &AnalysisService{
		provider:      provider,
		pdf:           pdf,
		guidelinesDoc: guidelinesDoc,
		timeout:       timeout,
	}
}

// Analyze runs the full extraction and classification pipeline on one raw
// submission. It either fully succeeds or fully fails: there is no partial
// result and no local fallback extraction. Callers surface the failure and
// offer a retry.
func (s *AnalysisService) Analyze(ctx context.Context, rawText string, attachments []models.Attachment) (*models.AnalysisResult, error) {
	if strings.TrimSpace(rawText) == "" && len(attachments) == 0 {
		return nil, ErrEmptyInput
	}

	content := s.normalize(ctx, rawText, attachments)

	scenarioTypes := guidelines.Classify(content)
	profile := guidelines.Resolve(scenarioTypes)

	slog.Info("scenario context detected",
		"scenario_types", scenarioTypes,
		"departments", profile.SuggestedDepartments,
		"risk_level", profile.RiskLevel,
	)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Generate(genCtx, models.GenerateRequest{
		System:      buildAnalysisPrompt(scenarioTypes, profile),
		User:        analysisUserPrefix + content,
		JSONMode:    true,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	resp, err := parseAnalysisResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	result := resp.toAnalysisResult()
	result.ScenarioTypes = scenarioNames(scenarioTypes)
	result.SuggestedDepartments = orEmpty(profile.SuggestedDepartments)
	result.RiskLevel = profile.RiskLevel
	result.Provider = s.provider.Name()

	slog.Info("request classified",
		"request_type", result.RequestType,
		"request_type_confidence", result.RequestTypeConfidence,
		"reason", result.RequestTypeReason,
	)

	return result, nil
}

// GenerateWizardQuestions asks the model for 1-3 request-specific
// clarification questions. Any failure — API error, bad JSON, empty set —
// falls back to the fixed default questions. Never returns an error.
func (s *AnalysisService) GenerateWizardQuestions(ctx context.Context, title, description string) []models.WizardQuestion {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Generate(genCtx, models.GenerateRequest{
		System: buildWizardPrompt(s.guidelinesDoc),
		User: fmt.Sprintf("Request Title: %s\n\nRequest Description: %s\n\nGenerate 1-3 most relevant clarification questions for this specific change management request.",
			title, description),
		JSONMode:    true,
		Temperature: wizardTemperature,
		MaxTokens:   wizardMaxTokens,
	})
	if err != nil {
		slog.Warn("wizard question generation failed, using defaults", "error", err)
		return wizard.DefaultQuestions()
	}

	questions, err := parseWizardQuestions(raw)
	if err != nil || len(questions) == 0 {
		slog.Warn("wizard question response unusable, using defaults", "error", err)
		return wizard.DefaultQuestions()
	}

	if len(questions) > maxWizardCount {
		questions = questions[:maxWizardCount]
	}
	return questions
}

// parseWizardQuestions accepts both response shapes the model produces: a
// bare array of question objects, or an object with a "questions" key.
func parseWizardQuestions(raw string) ([]models.WizardQuestion, error) {
	var bare []models.WizardQuestion
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return validQuestions(bare), nil
	}

	var wrapped struct {
		Questions []models.WizardQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("decoding wizard questions: %w", err)
	}
	return validQuestions(wrapped.Questions), nil
}

func validQuestions(qs []models.WizardQuestion) []models.WizardQuestion {
	kept := qs[:0]
	for _, q := range qs {
		if strings.TrimSpace(q.Question) != "" {
			kept = append(kept, q)
		}
	}
	return kept
}

// EnhanceDescription rewrites a description into a more complete,
// professional form while preserving intent. Unlike the wizard path this
// surfaces failures: the caller keeps the original text on error.
func (s *AnalysisService) EnhanceDescription(ctx context.Context, description string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	enhanced, err := s.provider.Generate(genCtx, models.GenerateRequest{
		System:      buildEnhancePrompt(),
		User:        "Please enhance this change management request description to make it more complete and professional:\n\n" + description,
		Temperature: enhanceTemperature,
		MaxTokens:   enhanceMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("enhancing description: %w", err)
	}
	if strings.TrimSpace(enhanced) == "" {
		return description, nil
	}
	return enhanced, nil
}

func scenarioNames(types []guidelines.ScenarioType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// truncateString truncates s to maxBytes without splitting UTF-8 runes.
func truncateString(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
