package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Session errors
	ErrMsgUserNotFound     = "usuário não encontrado"
	ErrMsgNotAuthenticated = "not authenticated"
	ErrMsgNoActiveSession  = "no active session"
	ErrMsgNotAdmin         = "admin privileges required"
	ErrMsgTokenExpired     = "token expired"
	ErrMsgPlayerNotCreated = "erro ao criar jogador"
	ErrMsgUnknownTab       = "unknown tab"

	// Action errors
	ErrMsgBusy             = "another action is still in progress"
	ErrMsgCancelled        = "action cancelled"
	ErrMsgPasswordMismatch = "as senhas não coincidem"

	// Economy errors
	ErrMsgInsufficientFunds = "saldo insuficiente"
	ErrMsgInvalidDecimal    = "invalid decimal amount"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
	ErrMsgNotFound     = "not found"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Session errors
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)
	ErrNoActiveSession  = errors.New(ErrMsgNoActiveSession)
	ErrNotAdmin         = errors.New(ErrMsgNotAdmin)
	ErrTokenExpired     = errors.New(ErrMsgTokenExpired)
	ErrPlayerNotCreated = errors.New(ErrMsgPlayerNotCreated)
	ErrUnknownTab       = errors.New(ErrMsgUnknownTab)

	// Action errors
	ErrBusy             = errors.New(ErrMsgBusy)
	ErrCancelled        = errors.New(ErrMsgCancelled)
	ErrPasswordMismatch = errors.New(ErrMsgPasswordMismatch)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidDecimal    = errors.New(ErrMsgInvalidDecimal)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	ErrNotFound     = errors.New(ErrMsgNotFound)
)
