package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

const Version = "1.0.0"

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []readinessCheck
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	h := &HealthHandler{}
	h.AddCheck("database", db.PingContext)
	return h
}

// AddCheck registers a dependency probed by Readiness.
func (h *HealthHandler) AddCheck(name string, check func(ctx context.Context) error) {
	h.checks = append(h.checks, readinessCheck{name: name, check: check})
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	httpStatus := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for _, c := range h.checks {
		if err := c.check(ctx); err != nil {
			slog.Warn("readiness check failed", "check", c.name, "error", err)
			results[c.name] = "down"
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		results[c.name] = "ok"
	}

	overallStatus := "ok"
	if httpStatus != http.StatusOK {
		overallStatus = "down"
	}

	RespondJSON(w, httpStatus, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    results,
	})
}
