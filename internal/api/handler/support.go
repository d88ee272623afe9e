package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/internal/notify"
)

// SupportSender defines the interface the support handler depends on.
type SupportSender interface {
	SendSupportEmail(ctx context.Context, req notify.SupportRequest) error
}

// NewSupportEmailHandler returns an http.HandlerFunc for
// POST /api/v1/support-email.
func NewSupportEmailHandler(svc SupportSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			response.Error(w, http.StatusServiceUnavailable, "EMAIL_DISABLED",
				"Email delivery is not configured", nil)
			return
		}

		var req struct {
			FromEmail string `json:"fromEmail"`
			FromName  string `json:"fromName"`
			Subject   string `json:"subject"`
			Body      string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if _, err := mail.ParseAddress(req.FromEmail); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"fromEmail must be a valid email address", nil)
			return
		}
		if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"subject and body are required", nil)
			return
		}

		err := svc.SendSupportEmail(r.Context(), notify.SupportRequest{
			FromEmail: req.FromEmail,
			FromName:  req.FromName,
			Subject:   req.Subject,
			Body:      req.Body,
		})
		if err != nil {
			response.Error(w, http.StatusBadGateway, "EMAIL_FAILED",
				"The support email could not be sent", nil)
			return
		}

		response.JSON(w, map[string]bool{"sent": true})
	}
}
