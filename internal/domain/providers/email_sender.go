package providers

import "context"

// EmailSender defines the interface for the outbound mail relay
type EmailSender interface {
	// Send delivers one plain-text message to a single recipient
	Send(ctx context.Context, subject, body, recipient string) error
}
