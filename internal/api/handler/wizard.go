package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// QuestionGenerator defines the interface the wizard handler depends on.
type QuestionGenerator interface {
	GenerateWizardQuestions(ctx context.Context, title, description string) []models.WizardQuestion
}

// NewWizardQuestionsHandler returns an http.HandlerFunc for
// POST /api/v1/wizard-questions.
func NewWizardQuestionsHandler(svc QuestionGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"title or description is required", nil)
			return
		}

		questions := svc.GenerateWizardQuestions(r.Context(), req.Title, req.Description)
		response.JSON(w, map[string]any{"questions": questions})
	}
}
