package handler

import (
	"net/http"

	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// NewFormOptionsHandler returns an http.HandlerFunc for
// GET /api/v1/form-options. The option lists are fixed, so the handler
// serves the same payload on every request.
func NewFormOptionsHandler() http.HandlerFunc {
	options := models.IntakeFormOptions()
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, options)
	}
}
