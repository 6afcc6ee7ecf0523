package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgTaskNotFound      = "task not found"
	ErrMsgMissionNotFound   = "mission not found"
	ErrMsgDungeonNotFound   = "dungeon not found"
	ErrMsgRunNotFound       = "dungeon run not found"
	ErrMsgBondNotFound      = "bond not found"
	ErrMsgEquipmentNotFound = "equipment not found"
	ErrMsgResearchNotFound  = "research node not found"
	ErrMsgBundleNotFound    = "routine bundle not found"

	// Precondition errors
	ErrMsgMissionAlreadyActive      = "a mission is already active"
	ErrMsgActivityInProgress        = "another activity is in progress"
	ErrMsgRequirementsNotMet        = "requirements not met"
	ErrMsgTaskNotPending            = "task is not pending"
	ErrMsgTaskNotAwaitingPartner    = "task is not awaiting partner confirmation"
	ErrMsgNotTaskPartner            = "actor is not the task partner"
	ErrMsgInvalidParty              = "invalid party"
	ErrMsgRunNotInProgress          = "dungeon run is not in progress"
	ErrMsgNoStatPoints              = "no unspent stat points"
	ErrMsgMaxEnhancement            = "equipment is at max enhancement"
	ErrMsgResearchMaxed             = "research node is at max level"
	ErrMsgClassTransitionNotAllowed = "class transition not allowed"

	// Insufficient resource errors
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientMaterials = "insufficient materials"
	ErrMsgInsufficientTokens    = "insufficient research tokens"
	ErrMsgNoConsumables         = "no consumables left"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Storage errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrTaskNotFound      = errors.New(ErrMsgTaskNotFound)
	ErrMissionNotFound   = errors.New(ErrMsgMissionNotFound)
	ErrDungeonNotFound   = errors.New(ErrMsgDungeonNotFound)
	ErrRunNotFound       = errors.New(ErrMsgRunNotFound)
	ErrBondNotFound      = errors.New(ErrMsgBondNotFound)
	ErrEquipmentNotFound = errors.New(ErrMsgEquipmentNotFound)
	ErrResearchNotFound  = errors.New(ErrMsgResearchNotFound)
	ErrBundleNotFound    = errors.New(ErrMsgBundleNotFound)

	ErrMissionAlreadyActive      = errors.New(ErrMsgMissionAlreadyActive)
	ErrActivityInProgress        = errors.New(ErrMsgActivityInProgress)
	ErrRequirementsNotMet        = errors.New(ErrMsgRequirementsNotMet)
	ErrTaskNotPending            = errors.New(ErrMsgTaskNotPending)
	ErrTaskNotAwaitingPartner    = errors.New(ErrMsgTaskNotAwaitingPartner)
	ErrNotTaskPartner            = errors.New(ErrMsgNotTaskPartner)
	ErrInvalidParty              = errors.New(ErrMsgInvalidParty)
	ErrRunNotInProgress          = errors.New(ErrMsgRunNotInProgress)
	ErrNoStatPoints              = errors.New(ErrMsgNoStatPoints)
	ErrMaxEnhancement            = errors.New(ErrMsgMaxEnhancement)
	ErrResearchMaxed             = errors.New(ErrMsgResearchMaxed)
	ErrClassTransitionNotAllowed = errors.New(ErrMsgClassTransitionNotAllowed)

	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientMaterials = errors.New(ErrMsgInsufficientMaterials)
	ErrInsufficientTokens    = errors.New(ErrMsgInsufficientTokens)
	ErrNoConsumables         = errors.New(ErrMsgNoConsumables)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrTxClosed = errors.New(ErrMsgTxClosed)
)
