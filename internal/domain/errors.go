package domain

import "errors"

var (
	// ErrDuplicateUsername indicates the trimmed username already exists.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials indicates that the username or secret was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMissingCredentials indicates an empty username or secret.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrEntryNotFound indicates an update or delete matched no entry.
	ErrEntryNotFound = errors.New("weight entry not found")
	// ErrInvalidNumericInput indicates a value that is not a finite number.
	ErrInvalidNumericInput = errors.New("value must be a number")
	// ErrUnknownUnit indicates a unit other than kg or lbs.
	ErrUnknownUnit = errors.New("unit must be \"kg\" or \"lbs\"")
	// ErrNoDeliveryPermission indicates the transport refused to send.
	ErrNoDeliveryPermission = errors.New("no permission to deliver notifications")
	// ErrDeliveryFailure wraps any error returned by a Sender.
	ErrDeliveryFailure = errors.New("notification delivery failed")
)
