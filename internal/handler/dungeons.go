package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// StartDungeonRequest is the body of POST /dungeons/runs. With Resolve set
// the run is played out in the same request.
type StartDungeonRequest struct {
	DungeonID string      `json:"dungeon_id" validate:"required,max=64"`
	PartyIDs  []uuid.UUID `json:"party_ids" validate:"required,min=1,max=4"`
	Approach  string      `json:"approach" validate:"omitempty,oneof=cautious aggressive"`
	Resolve   bool        `json:"resolve"`
}

// HandleStartDungeon starts a run, optionally resolving it immediately
// @Summary Start dungeon run
// @Tags dungeons
// @Accept json
// @Produce json
// @Param request body StartDungeonRequest true "Dungeon, party and approach"
// @Success 201 {object} domain.DungeonRun
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/dungeons/runs [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleStartDungeon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartDungeonRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start dungeon"); err != nil {
			return
		}
		start := h.svc.StartDungeon
		if req.Resolve {
			start = h.svc.RunDungeon
		}
		run, err := start(r.Context(), req.DungeonID, req.PartyIDs, domain.Approach(req.Approach))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, run)
	}
}

// HandleResolveRun plays out an in-progress run; a resolved run is returned as stored
// @Summary Resolve dungeon run
// @Tags dungeons
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} domain.DungeonRun
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dungeons/runs/{id}/resolve [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleResolveRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		run, err := h.svc.ResolveDungeon(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, run)
	}
}

// HandleGetRun returns a run in any state
// @Summary Get dungeon run
// @Tags dungeons
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} domain.DungeonRun
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dungeons/runs/{id} [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleGetRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		run, err := h.svc.GetRun(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, run)
	}
}

// HandleListDungeons returns the dungeon catalog
// @Summary Dungeon catalog
// @Tags content
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/content/dungeons [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleListDungeons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: h.content.Tables(r.Context()).Dungeons})
	}
}
