package domain

import "context"

// DeliveryPermission reports whether outgoing messages may be sent at all.
type DeliveryPermission interface {
	IsAuthorized() bool
}

// Sender hands a message to an external transport.
type Sender interface {
	Send(ctx context.Context, message, to string) error
}

// LocaleHint supplies the display unit used when an account has no stored
// preference.
type LocaleHint interface {
	DefaultUnit() Unit
}
