package errors

import (
	"errors"
	"fmt"
)

// ErrClientNotFound is returned when no client record exists for a Telegram
// user in any inbound. It marks the "no active subscription" case, not a
// technical failure.
var ErrClientNotFound = errors.New("client not found in any inbound")

// ErrNoInbounds is returned when the panel has no inbound to host a new
// client.
var ErrNoInbounds = errors.New("no inbounds configured on the panel")

// ErrSubscriptionExpired is returned when an operation requires an active
// subscription but the client's expiry has passed.
var ErrSubscriptionExpired = errors.New("subscription expired")

// AuthenticationError represents a failed panel login (bad credentials or
// unreachable panel)
type AuthenticationError struct {
	Status  int
	Message string
}

// Error returns the error message
func (e *AuthenticationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("panel authentication failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("panel authentication failed: %s", e.Message)
}

// PanelError represents a business-logic failure reported by the panel in a
// successful HTTP response
type PanelError struct {
	Operation string
	Message   string
}

// Error returns the error message
func (e *PanelError) Error() string {
	return fmt.Sprintf("panel rejected %s: %s", e.Operation, e.Message)
}

// ValidationError represents an error when user input validation fails
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}
