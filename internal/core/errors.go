// Package core defines the fundamental types and errors for FounderLink.
package core

import "errors"

// Core errors that can occur across the system
var (
	// Storage errors
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrMigrationFailed = errors.New("migration failed")

	// Upstream errors
	ErrSearchUnavailable = errors.New("similarity search unavailable")
	ErrSinkUnavailable   = errors.New("feedback sink unavailable")

	// Matching errors
	ErrSelfMatch = errors.New("cannot match a user with themselves")

	// Introduction errors
	ErrIntroNotFound     = errors.New("introduction not found")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrOutcomeRequired   = errors.New("completed introduction requires outcome data")

	// Validation errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrUnknownOutcome = errors.New("unknown outcome type")
)
