package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/mwhitfield/lendintake/internal/api/middleware"
	"github.com/mwhitfield/lendintake/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler      http.HandlerFunc
	FormOptionsHandler http.HandlerFunc

	AnalyzeHandler       http.HandlerFunc
	WizardHandler        http.HandlerFunc
	EnhanceHandler       http.HandlerFunc
	SubmitHandler        http.HandlerFunc
	SupportEmailHandler  http.HandlerFunc
	ListSubmissions      http.HandlerFunc
	GetSubmission        http.HandlerFunc

	CreateKeyHandler http.HandlerFunc
	ListKeysHandler  http.HandlerFunc
	RevokeKeyHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public routes
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/api/v1/form-options", orNotImplemented(deps.FormOptionsHandler))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/v1/wizard-questions", orNotImplemented(deps.WizardHandler))
		r.Post("/api/v1/enhance-description", orNotImplemented(deps.EnhanceHandler))
		r.Post("/api/v1/submit", orNotImplemented(deps.SubmitHandler))
		r.Post("/api/v1/support-email", orNotImplemented(deps.SupportEmailHandler))

		r.Get("/api/v1/submissions", orNotImplemented(deps.ListSubmissions))
		r.Get("/api/v1/submissions/{submissionID}", orNotImplemented(deps.GetSubmission))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope("admin"))

			r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
			r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
			r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
