package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mwhitfield/lendintake/internal/api/response"
)

// Enhancer defines the interface the enhance handler depends on.
type Enhancer interface {
	EnhanceDescription(ctx context.Context, description string) (string, error)
}

// NewEnhanceHandler returns an http.HandlerFunc for
// POST /api/v1/enhance-description.
func NewEnhanceHandler(svc Enhancer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if strings.TrimSpace(req.Description) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"description is required", nil)
			return
		}

		enhanced, err := svc.EnhanceDescription(r.Context(), req.Description)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.JSON(w, map[string]string{"description": enhanced})
	}
}
