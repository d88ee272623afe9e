package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwhitfield/lendintake/internal/api/response"
	"github.com/mwhitfield/lendintake/internal/store"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// NewListSubmissionsHandler returns an http.HandlerFunc for
// GET /api/v1/submissions.
func NewListSubmissionsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := store.SubmissionFilter{
			RequestType: models.RequestType(q.Get("requestType")),
		}
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			filter.Page = page
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = limit
		}

		if filter.RequestType != "" && !filter.RequestType.Valid() {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"requestType must be one of change, support, training", nil)
			return
		}

		subs, total, err := st.ListSubmissions(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list submissions", nil)
			return
		}
		if subs == nil {
			subs = []*models.Submission{}
		}

		page := filter.Page
		if page <= 0 {
			page = 1
		}
		limit := filter.Limit
		if limit <= 0 {
			limit = 20
		}

		response.Collection(w, subs, response.PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: page*limit < total,
		})
	}
}

// NewGetSubmissionHandler returns an http.HandlerFunc for
// GET /api/v1/submissions/{submissionID}.
func NewGetSubmissionHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "submissionID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"submissionID must be a valid UUID", nil)
			return
		}

		sub, err := st.GetSubmission(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Submission not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to load submission", nil)
			return
		}

		response.JSON(w, sub)
	}
}
