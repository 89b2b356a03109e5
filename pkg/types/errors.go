package types

import "errors"

// Content store errors.
var (
	ErrInvalidKind  = errors.New("invalid entry kind")
	ErrMissingField = errors.New("missing required field for entry kind")
	ErrDuplicateID  = errors.New("entry ID already exists")
	ErrParse        = errors.New("malformed snapshot document")
)

// Messaging gateway errors.
var (
	ErrEmptySubject  = errors.New("subject must not be empty")
	ErrEmptyBody     = errors.New("message must not be empty")
	ErrNotConfigured = errors.New("messaging relay is not configured")
	ErrQuotaExceeded = errors.New("daily send limit reached")
	ErrTransportLoad = errors.New("messaging transport failed to load")
	ErrSendFailed    = errors.New("relay send failed")
)
