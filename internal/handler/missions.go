package handler

import (
	"net/http"

	"github.com/osse101/QuestForge_Go/internal/mission"
)

// StartMissionRequest is the body of POST /characters/{id}/missions
type StartMissionRequest struct {
	MissionID string `json:"mission_id" validate:"required,max=64"`
}

// MissionCheckResponse wraps a check. Resolution is nil while the mission
// is still running or nothing was started.
type MissionCheckResponse struct {
	Message    string              `json:"message,omitempty"`
	Resolution *mission.Resolution `json:"resolution,omitempty"`
}

// HandleStartMission begins a timed mission
// @Summary Start mission
// @Tags missions
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body StartMissionRequest true "Mission to start"
// @Success 201 {object} domain.ActiveMission
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters/{id}/missions [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleStartMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req StartMissionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start mission"); err != nil {
			return
		}
		active, err := h.svc.StartMission(r.Context(), id, req.MissionID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, active)
	}
}

// HandleCheckMission resolves the character's mission once it is due
// @Summary Check mission
// @Description Answers 202 while the mission is still running
// @Tags missions
// @Produce json
// @Param id path string true "Character ID"
// @Success 200 {object} MissionCheckResponse
// @Success 202 {object} MissionCheckResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/mission [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCheckMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		res, err := h.svc.CheckMission(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if res == nil {
			c, err := h.svc.GetCharacter(r.Context(), id)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			msg := MsgNoMission
			if c.ActiveMission != nil {
				msg = MsgMissionRunning
			}
			respondJSON(w, http.StatusAccepted, MissionCheckResponse{Message: msg})
			return
		}
		respondJSON(w, http.StatusOK, MissionCheckResponse{Resolution: res})
	}
}

// HandleActiveMissions lists every running mission
// @Summary List running missions
// @Tags missions
// @Produce json
// @Success 200 {object} DataResponse{data=[]domain.ActiveMission}
// @Router /api/v1/missions/active [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleActiveMissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := h.svc.ActiveMissions(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: active})
	}
}

// HandleListMissions returns the mission catalog
// @Summary Mission catalog
// @Tags content
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/content/missions [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleListMissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: h.content.Tables(r.Context()).Missions})
	}
}
