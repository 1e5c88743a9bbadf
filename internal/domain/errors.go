package domain

import "errors"

var (
	ErrUnknownSession    = errors.New("unknown session")
	ErrSessionBound      = errors.New("session already bound to another account")
	ErrUnknownAction     = errors.New("unknown action")
	ErrDuplicateAction   = errors.New("action already registered")
	ErrMalformedRequest  = errors.New("malformed request")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidLedger     = errors.New("invalid ledger")
	ErrTransport         = errors.New("transport error")
	ErrHandler           = errors.New("handler error")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSameAccount       = errors.New("source and target are the same")
	ErrSecretNotFound    = errors.New("secret not found")
)
