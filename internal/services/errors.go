package services

import "errors"

// ===== COMMON SERVICE ERRORS =====

var (
	// Form errors
	ErrFormNotFound = errors.New("form not found")

	// Wizard session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotReviewing     = errors.New("collector is not in the reviewing phase")
	ErrSendInFlight     = errors.New("a send is already in flight")
	ErrAlreadyConfirmed = errors.New("submission already confirmed")

	// Backup errors
	ErrNoBackupState = errors.New("no backup state to restore")
)
