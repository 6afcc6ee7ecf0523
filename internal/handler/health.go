package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/osse101/QuestForge_Go/internal/content"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
	readinessTimeout  = 2 * time.Second
)

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Pinger is a storage backend that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck is one named dependency checked by /readyz
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// PingCheck pings a storage backend
func PingCheck(name string, p Pinger) ReadinessCheck {
	return ReadinessCheck{Name: name, Check: p.Ping}
}

// ContentCheck fails while the provider has no tables to serve
func ContentCheck(provider content.Provider) ReadinessCheck {
	return ReadinessCheck{Name: "content", Check: func(ctx context.Context) error {
		if provider == nil || provider.Tables(ctx) == nil {
			return errors.New("no content tables loaded")
		}
		return nil
	}}
}

// HandleHealthz is the liveness check
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz runs every check under one deadline. Any failure answers 503
// with the failing check names; the reasons stay in the log.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: statusOK}
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		code := http.StatusOK
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.FromContext(ctx).Error("Readiness check failed", "check", c.Name, "error", err)
				resp.Checks[c.Name] = statusUnavailable
				resp.Status = statusUnavailable
				resp.Message = c.Name + " check failed"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = statusOK
		}
		respondJSON(w, code, resp)
	}
}
