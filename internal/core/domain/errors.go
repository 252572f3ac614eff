package domain

import "errors"

var (
	// Identity.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownRole        = errors.New("unknown role")

	// Registry.
	ErrCondominiumNotFound = errors.New("condominium not found")

	// Finance.
	ErrReceivableNotFound = errors.New("receivable not found")

	// Messaging.
	ErrDuplicateMessage = errors.New("message already queued")
	ErrUnknownChannel   = errors.New("unknown messaging channel")
)
