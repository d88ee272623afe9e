// Package intake finalizes reviewed requests: routing, persistence, ticket
// creation, and confirmation email.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/lendintake/internal/store"
	"github.com/mwhitfield/lendintake/internal/ticket"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// ErrInvalidSubmission indicates a submission missing required fields.
var ErrInvalidSubmission = errors.New("invalid submission")

// Notifier sends the submitter a confirmation email.
type Notifier interface {
	SendConfirmation(ctx context.Context, to string, sub *models.Submission) error
}

// SubmitRequest is a reviewed form ready to be finalized.
type SubmitRequest struct {
	Form           models.FormData
	RequestType    models.RequestType
	RequestorName  string
	RequestorEmail string
	Stakeholder    string
}

// Service finalizes intake submissions. The ticket client and notifier are
// optional; when absent those steps are skipped.
type Service struct {
	store    store.Store
	tickets  ticket.Client
	notifier Notifier
}

// NewService creates a new submission Service.
func NewService(st store.Store, tickets ticket.Client, notifier Notifier) *Service {
	return &Service{store: st, tickets: tickets, notifier: notifier}
}

// Submit persists the reviewed request, creates a work item when a ticket
// client is configured, and sends a confirmation email. Ticket and email
// failures do not fail the submission; ticket errors are recorded on the
// stored row.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Submission, error) {
	if strings.TrimSpace(req.Form.Title) == "" || strings.TrimSpace(req.Form.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalidSubmission)
	}

	requestType := req.RequestType
	if !requestType.Valid() {
		requestType = models.RequestTypeChange
	}

	sub := &models.Submission{
		ID:                uuid.New(),
		Title:             req.Form.Title,
		Description:       req.Form.Description,
		SoftwarePlatforms: req.Form.SoftwarePlatforms,
		ImpactedAreas:     req.Form.ImpactedAreas,
		Channels:          req.Form.Channels,
		RequestType:       requestType,
		RequestorName:     req.RequestorName,
		RequestorEmail:    req.RequestorEmail,
		Stakeholder:       req.Stakeholder,
		CreatedAt:         time.Now().UTC(),
	}

	if s.tickets != nil {
		item, err := s.tickets.CreateWorkItem(ctx, req.Form)
		if err != nil {
			slog.Warn("work item creation failed", "submission_id", sub.ID, "error", err)
			msg := err.Error()
			sub.TicketError = &msg
		} else {
			sub.WorkItemID = &item.ID
			sub.WorkItemURL = &item.URL
			slog.Info("work item created", "submission_id", sub.ID, "work_item_id", item.ID)
		}
	}

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving submission: %w", err)
	}

	if s.notifier != nil && sub.RequestorEmail != "" {
		if err := s.notifier.SendConfirmation(ctx, sub.RequestorEmail, sub); err != nil {
			slog.Warn("confirmation email failed", "submission_id", sub.ID, "error", err)
		}
	}

	return sub, nil
}
