package notify

import "errors"

var (
	// ErrNotConfigured indicates the SMTP notifier has no host configured.
	ErrNotConfigured = errors.New("email is not configured")
	// ErrNoRecipient indicates a send was attempted without a recipient.
	ErrNoRecipient = errors.New("recipient address required")
)
