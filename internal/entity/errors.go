package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionBusy      = errors.New("another request is already in progress for this session")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrNotEnoughHistory = errors.New("not enough conversation history")
	ErrProblemRequired  = errors.New("problem statement must be generated first")

	// AI generation errors
	ErrGenerationFailed = errors.New("generation failed")

	// Persistence errors
	ErrFormNotFound     = errors.New("ideation form not found")
	ErrPersistenceWrite = errors.New("could not write record")

	// Auth errors. Each kind maps to its own user-facing message, so the
	// taxonomy must stay distinct all the way to the handler.
	ErrEmailAlreadyInUse  = errors.New("email address already in use")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAuthProvider       = errors.New("auth provider error")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
