package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// maxPooledBuffer keeps one oversized response from pinning memory in the pool
const maxPooledBuffer = 64 << 10

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			bufferPool.Put(buf)
		}
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status and user-facing message
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgTaskNotFoundError      = "Task not found"
	ErrMsgMissionNotFoundError   = "Mission not found"
	ErrMsgDungeonNotFoundError   = "Dungeon not found"
	ErrMsgRunNotFoundError       = "Dungeon run not found"
	ErrMsgBondNotFoundError      = "Bond not found"
	ErrMsgEquipmentNotFoundError = "Item not found"
	ErrMsgResearchNotFoundError  = "Research node not found"
	ErrMsgBundleNotFoundError    = "Routine bundle not found"

	ErrMsgMissionActiveError       = "A mission is already running"
	ErrMsgBusyError                = "Character is busy with another activity"
	ErrMsgRequirementsNotMetError  = "Requirements not met"
	ErrMsgTaskNotPendingError      = "Task is not pending"
	ErrMsgTaskNotEscrowedError     = "Task is not awaiting partner confirmation"
	ErrMsgNotTaskPartnerError      = "Only the assigning partner can do that"
	ErrMsgInvalidPartyError        = "Invalid party for this dungeon"
	ErrMsgRunNotInProgressError    = "Dungeon run is not in progress"
	ErrMsgNoStatPointsError        = "No unspent stat points"
	ErrMsgMaxEnhancementError      = "Item is already at maximum enhancement"
	ErrMsgResearchMaxedError       = "Research node is already maxed"
	ErrMsgClassTransitionError     = "Class transition not allowed"
	ErrMsgNotEnoughGoldError       = "Not enough gold"
	ErrMsgNotEnoughMaterialsError  = "Not enough materials"
	ErrMsgNotEnoughTokensError     = "Not enough research tokens"
	ErrMsgNoConsumablesError       = "No consumables left"
	ErrMsgInvalidRequestInputError = "Invalid request. Please check your inputs."
)

var notFoundErrors = []struct {
	err error
	msg string
}{
	{domain.ErrCharacterNotFound, ErrMsgCharacterNotFoundError},
	{domain.ErrTaskNotFound, ErrMsgTaskNotFoundError},
	{domain.ErrMissionNotFound, ErrMsgMissionNotFoundError},
	{domain.ErrDungeonNotFound, ErrMsgDungeonNotFoundError},
	{domain.ErrRunNotFound, ErrMsgRunNotFoundError},
	{domain.ErrBondNotFound, ErrMsgBondNotFoundError},
	{domain.ErrEquipmentNotFound, ErrMsgEquipmentNotFoundError},
	{domain.ErrResearchNotFound, ErrMsgResearchNotFoundError},
	{domain.ErrBundleNotFound, ErrMsgBundleNotFoundError},
}

var conflictErrors = []struct {
	err error
	msg string
}{
	{domain.ErrMissionAlreadyActive, ErrMsgMissionActiveError},
	{domain.ErrActivityInProgress, ErrMsgBusyError},
	{domain.ErrTaskNotPending, ErrMsgTaskNotPendingError},
	{domain.ErrTaskNotAwaitingPartner, ErrMsgTaskNotEscrowedError},
	{domain.ErrRunNotInProgress, ErrMsgRunNotInProgressError},
	{domain.ErrMaxEnhancement, ErrMsgMaxEnhancementError},
	{domain.ErrResearchMaxed, ErrMsgResearchMaxedError},
}

var unprocessableErrors = []struct {
	err error
	msg string
}{
	{domain.ErrRequirementsNotMet, ErrMsgRequirementsNotMetError},
	{domain.ErrInvalidParty, ErrMsgInvalidPartyError},
	{domain.ErrNoStatPoints, ErrMsgNoStatPointsError},
	{domain.ErrClassTransitionNotAllowed, ErrMsgClassTransitionError},
	{domain.ErrInsufficientFunds, ErrMsgNotEnoughGoldError},
	{domain.ErrInsufficientMaterials, ErrMsgNotEnoughMaterialsError},
	{domain.ErrInsufficientTokens, ErrMsgNotEnoughTokensError},
	{domain.ErrNoConsumables, ErrMsgNoConsumablesError},
}

// mapServiceErrorToUserMessage converts service errors into HTTP status codes
// and messages. Internal details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	for _, e := range notFoundErrors {
		if errors.Is(err, e.err) {
			return http.StatusNotFound, e.msg
		}
	}
	for _, e := range conflictErrors {
		if errors.Is(err, e.err) {
			return http.StatusConflict, e.msg
		}
	}
	for _, e := range unprocessableErrors {
		if errors.Is(err, e.err) {
			return http.StatusUnprocessableEntity, e.msg
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotTaskPartner):
		return http.StatusForbidden, ErrMsgNotTaskPartnerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
