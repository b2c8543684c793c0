package domain

import "errors"

// Workflow error kinds. Services return these (usually wrapped) and the HTTP
// layer maps them to status codes with errors.Is.
var (
	ErrNotFound                 = errors.New("record not found")
	ErrDuplicateSerial          = errors.New("serial number already exists")
	ErrDuplicateIdentifier      = errors.New("agent identifier already exists")
	ErrDuplicateUsername        = errors.New("username already exists")
	ErrInvalidTransition        = errors.New("equipment is not in the required status")
	ErrAlreadyReturned          = errors.New("assignment already returned")
	ErrAlreadyUsed              = errors.New("invite already used")
	ErrAlreadyClosed            = errors.New("incident already closed")
	ErrInviteExpired            = errors.New("invite has expired")
	ErrInvalidToken             = errors.New("invalid invite token")
	ErrIdentifierSpaceExhausted = errors.New("could not generate a unique identifier")
	ErrValidation               = errors.New("validation failed")
)
