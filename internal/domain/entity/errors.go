package entity

import "errors"

// Standard domain errors
var (
	ErrInvalidMessage    = errors.New("message is missing or not a string")
	ErrRateLimitExceeded = errors.New("rate limit exceeded: too many messages in this session")
	ErrProviderDisabled  = errors.New("external AI provider is not configured")
	ErrInternalServer    = errors.New("an internal error occurred")
)
