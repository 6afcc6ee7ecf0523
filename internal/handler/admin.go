package handler

import (
	"net/http"
	"time"

	"github.com/osse101/QuestForge_Go/internal/logger"
)

// CountResponse reports how many records a maintenance job touched
type CountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// HandleSweepEscrow auto-confirms escrowed tasks past the confirmation window
// @Summary Auto-confirm stale escrow
// @Tags admin
// @Produce json
// @Success 200 {object} CountResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/escrow/sweep [post]
// @Security ApiKeyAuth
func (h *AdminHandlers) HandleSweepEscrow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := h.svc.SweepEscrow(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Escrow sweep failed", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Message: MsgEscrowSwept, Count: n})
	}
}

// HandleResetRecurring resets recurring tasks as of ?date=YYYY-MM-DD, or now
// @Summary Reset recurring tasks
// @Tags admin
// @Produce json
// @Param date query string false "Reset as of YYYY-MM-DD"
// @Success 200 {object} CountResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/recurring/reset [post]
// @Security ApiKeyAuth
func (h *AdminHandlers) HandleResetRecurring() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		if raw := GetOptionalQueryParam(r, "date", ""); raw != "" {
			day, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
				return
			}
			now = day
		}
		n, err := h.svc.ResetRecurring(r.Context(), now)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Message: MsgRecurringReset, Count: n})
	}
}

// HandleCheckStreaks publishes streak warnings
// @Summary Check streaks
// @Tags admin
// @Produce json
// @Success 200 {object} CountResponse
// @Router /api/v1/admin/streaks/check [post]
// @Security ApiKeyAuth
func (h *AdminHandlers) HandleCheckStreaks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := h.svc.CheckStreaks(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Message: MsgStreaksChecked, Count: n})
	}
}

// HandleDrainOutbox replays parked sync snapshots
// @Summary Drain sync outbox
// @Tags admin
// @Produce json
// @Success 200 {object} CountResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/outbox/drain [post]
// @Security ApiKeyAuth
func (h *AdminHandlers) HandleDrainOutbox() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.drainer == nil {
			respondJSON(w, http.StatusOK, CountResponse{Message: MsgOutboxNotEnabled})
			return
		}
		n, err := h.drainer.Drain(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Outbox drain failed", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Message: MsgOutboxDrained, Count: n})
	}
}

// HandleReloadContent drops cached content so the next read refetches it
// @Summary Reload content
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/content/reload [post]
// @Security ApiKeyAuth
func (h *AdminHandlers) HandleReloadContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.invalidator != nil {
			h.invalidator.Invalidate()
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContentReloaded})
	}
}
