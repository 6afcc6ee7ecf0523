package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/QuestForge_Go/internal/eventlog"
)

// JournalHandlers serve a character's recorded event history
type JournalHandlers struct {
	journal eventlog.Service
}

// NewJournalHandlers creates journal handlers
func NewJournalHandlers(journal eventlog.Service) *JournalHandlers {
	return &JournalHandlers{journal: journal}
}

// HandleHistory returns the character's recent events, newest first.
// ?limit caps the result size.
// @Summary Event history
// @Tags journal
// @Produce json
// @Param id path string true "Character ID"
// @Param limit query int false "Maximum events"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/characters/{id}/events [get]
// @Security ApiKeyAuth
func (h *JournalHandlers) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		limit := 0
		if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}
		events, err := h.journal.History(r.Context(), id, limit)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: events})
	}
}
