package handler

import (
	"context"
	"net/http"

	"github.com/mwhitfield/lendintake/internal/api/response"
)

// Pinger reports backing service connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler returns an http.HandlerFunc for GET /api/v1/health.
// The database and cache checks degrade the report; they do not fail it.
func NewHealthHandler(db, cache Pinger, providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "ok"
		if err := db.Ping(r.Context()); err != nil {
			dbStatus = "unavailable"
		}

		cacheStatus := "ok"
		if err := cache.Ping(r.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		response.JSON(w, map[string]string{
			"status":   "ok",
			"database": dbStatus,
			"cache":    cacheStatus,
			"provider": providerName,
		})
	}
}
