// Package mail abstracts outbound transactional email behind a narrow
// interface, with a Resend HTTP implementation and a recording mock for tests.
package mail

import "context"

// Message is a single outbound email. Body is an HTML fragment.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer dispatches a single message. Implementations must be safe for
// concurrent use; the reminder sweep and request handlers share one instance.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
