package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/logger"
)

// CreateCharacterRequest is the body of POST /characters
type CreateCharacterRequest struct {
	Name  string `json:"name" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Class string `json:"class" validate:"required,class"`
}

// SpendStatRequest is the body of POST /characters/{id}/stats
type SpendStatRequest struct {
	Stat string `json:"stat" validate:"required,stat"`
}

// ActivateBuffRequest is the body of POST /characters/{id}/buffs
type ActivateBuffRequest struct {
	Kind string `json:"kind" validate:"required,oneof=meditation regen"`
}

// PurchaseResearchRequest is the body of POST /characters/{id}/research
type PurchaseResearchRequest struct {
	Node string `json:"node" validate:"required,max=64"`
}

// ResearchResponse reports the new level of a purchased node
type ResearchResponse struct {
	Node  string `json:"node"`
	Level int    `json:"level"`
}

// EquipRequest is the body of POST /characters/{id}/equipment/{itemID}/equip
type EquipRequest struct {
	Equipped bool `json:"equipped"`
}

// CreateBondRequest is the body of POST /bonds
type CreateBondRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids" validate:"required,min=2,max=4"`
}

// HandleCreateCharacter creates a level 1 character
// @Summary Create character
// @Tags characters
// @Accept json
// @Produce json
// @Param request body CreateCharacterRequest true "Name and class"
// @Success 201 {object} domain.PlayerCharacter
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/characters [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCreateCharacter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}
		c, err := h.svc.CreateCharacter(r.Context(), req.Name, domain.CharacterClass(strings.ToLower(req.Class)))
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to create character", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, c)
	}
}

// HandleGetCharacter returns a character with today's counters
// @Summary Get character
// @Tags characters
// @Produce json
// @Param id path string true "Character ID"
// @Success 200 {object} domain.PlayerCharacter
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id} [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleGetCharacter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		c, err := h.svc.GetCharacter(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleSpendStatPoint spends one unspent stat point
// @Summary Spend a stat point
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body SpendStatRequest true "Stat to raise"
// @Success 200 {object} domain.PlayerCharacter
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters/{id}/stats [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleSpendStatPoint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req SpendStatRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Spend stat point"); err != nil {
			return
		}
		c, err := h.svc.SpendStatPoint(r.Context(), id, domain.StatType(strings.ToLower(req.Stat)))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleActivateBuff spends a consumable on a timed buff
// @Summary Activate a buff
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body ActivateBuffRequest true "Buff kind"
// @Success 200 {object} domain.PlayerCharacter
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters/{id}/buffs [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleActivateBuff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req ActivateBuffRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activate buff"); err != nil {
			return
		}
		c, err := h.svc.ActivateBuff(r.Context(), id, domain.BuffKind(req.Kind))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandlePurchaseResearch buys the next level of a research node
// @Summary Purchase research
// @Tags research
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body PurchaseResearchRequest true "Research node"
// @Success 200 {object} ResearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters/{id}/research [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandlePurchaseResearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req PurchaseResearchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase research"); err != nil {
			return
		}
		level, err := h.svc.PurchaseResearch(r.Context(), id, req.Node)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ResearchResponse{Node: req.Node, Level: level})
	}
}

// HandleEnhanceEquipment attempts one enhancement level on an item
// @Summary Enhance equipment
// @Tags equipment
// @Produce json
// @Param id path string true "Character ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} forge.EnhanceResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters/{id}/equipment/{itemID}/enhance [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleEnhanceEquipment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		itemID, ok := URLParamUUID(w, r, "itemID")
		if !ok {
			return
		}
		res, err := h.svc.EnhanceEquipment(r.Context(), id, itemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleSalvageEquipment breaks an item down into materials
// @Summary Salvage equipment
// @Tags equipment
// @Produce json
// @Param id path string true "Character ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} forge.SalvageResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/equipment/{itemID}/salvage [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleSalvageEquipment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		itemID, ok := URLParamUUID(w, r, "itemID")
		if !ok {
			return
		}
		res, err := h.svc.SalvageEquipment(r.Context(), id, itemID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleEquipItem equips or unequips an owned item
// @Summary Equip or unequip an item
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param itemID path string true "Item ID"
// @Param request body EquipRequest true "Equip flag"
// @Success 200 {object} domain.PlayerCharacter
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/equipment/{itemID}/equip [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleEquipItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		itemID, ok := URLParamUUID(w, r, "itemID")
		if !ok {
			return
		}
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}
		c, err := h.svc.EquipItem(r.Context(), id, itemID, req.Equipped)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleCreateBond forms a bond between existing characters
// @Summary Create bond
// @Tags bonds
// @Accept json
// @Produce json
// @Param request body CreateBondRequest true "Bond members"
// @Success 201 {object} domain.Bond
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/bonds [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCreateBond() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBondRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create bond"); err != nil {
			return
		}
		b, err := h.svc.CreateBond(r.Context(), req.MemberIDs...)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, b)
	}
}
