package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgNotOwner        = "caller does not own this entity"

	// Generic entity errors
	ErrMsgNotFound      = "not found"
	ErrMsgAlreadyExists = "already exists"

	// Seed ledger errors
	ErrMsgInsufficientSeeds = "insufficient seeds"
	ErrMsgInvalidAmount     = "amount must be positive"
	ErrMsgOverflow          = "integer overflow"

	// Game session errors
	ErrMsgGameOver          = "game is over"
	ErrMsgClaimComplete     = "claim is complete, harvest before dropping"
	ErrMsgInvalidState      = "invalid state for this action"
	ErrMsgNothingToClaim    = "no pending seeds to claim"
	ErrMsgInvalidIndex      = "invalid board index"
	ErrMsgMismatchedLevels  = "fruits must be the same level to merge"
	ErrMsgNothingToWithdraw = "no harvested seeds to withdraw"

	// Land errors
	ErrMsgInvalidSlot      = "invalid slot"
	ErrMsgSlotOccupied     = "slot is occupied"
	ErrMsgSlotEmpty        = "slot is empty"
	ErrMsgNotReady         = "fruit is not ready"
	ErrMsgNoEmptySlots     = "no empty slots"
	ErrMsgNothingToHarvest = "nothing ready to harvest"

	// Market errors
	ErrMsgNotEnoughFruits = "not enough fruits of that type"
	ErrMsgMaxLevel        = "fruit is already at max level"
	ErrMsgInvalidFruit    = "invalid fruit type"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrNotOwner        = errors.New(ErrMsgNotOwner)

	// Generic entity errors
	ErrNotFound      = errors.New(ErrMsgNotFound)
	ErrAlreadyExists = errors.New(ErrMsgAlreadyExists)

	// Seed ledger errors
	ErrInsufficientSeeds = errors.New(ErrMsgInsufficientSeeds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrOverflow          = errors.New(ErrMsgOverflow)

	// Game session errors
	ErrGameOver          = errors.New(ErrMsgGameOver)
	ErrClaimComplete     = errors.New(ErrMsgClaimComplete)
	ErrInvalidState      = errors.New(ErrMsgInvalidState)
	ErrNothingToClaim    = errors.New(ErrMsgNothingToClaim)
	ErrInvalidIndex      = errors.New(ErrMsgInvalidIndex)
	ErrMismatchedLevels  = errors.New(ErrMsgMismatchedLevels)
	ErrNothingToWithdraw = errors.New(ErrMsgNothingToWithdraw)

	// Land errors
	ErrInvalidSlot      = errors.New(ErrMsgInvalidSlot)
	ErrSlotOccupied     = errors.New(ErrMsgSlotOccupied)
	ErrSlotEmpty        = errors.New(ErrMsgSlotEmpty)
	ErrNotReady         = errors.New(ErrMsgNotReady)
	ErrNoEmptySlots     = errors.New(ErrMsgNoEmptySlots)
	ErrNothingToHarvest = errors.New(ErrMsgNothingToHarvest)

	// Market errors
	ErrNotEnoughFruits = errors.New(ErrMsgNotEnoughFruits)
	ErrMaxLevel        = errors.New(ErrMsgMaxLevel)
	ErrInvalidFruit    = errors.New(ErrMsgInvalidFruit)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
