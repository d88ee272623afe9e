package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/internal/intake"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// Submitter defines the interface the submit handler depends on.
type Submitter interface {
	Submit(ctx context.Context, req intake.SubmitRequest) (*models.Submission, error)
}

// NewSubmitHandler returns an http.HandlerFunc for POST /api/v1/submit.
func NewSubmitHandler(svc Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Form           models.FormData    `json:"form"`
			RequestType    models.RequestType `json:"requestType"`
			RequestorName  string             `json:"requestorName"`
			RequestorEmail string             `json:"requestorEmail"`
			Stakeholder    string             `json:"stakeholder"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		sub, err := svc.Submit(r.Context(), intake.SubmitRequest{
			Form:           req.Form,
			RequestType:    req.RequestType,
			RequestorName:  req.RequestorName,
			RequestorEmail: req.RequestorEmail,
			Stakeholder:    req.Stakeholder,
		})
		if err != nil {
			if errors.Is(err, intake.ErrInvalidSubmission) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to save submission", nil)
			return
		}

		response.Created(w, sub)
	}
}
