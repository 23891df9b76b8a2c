// Package mailer delivers visitor contact messages to the portfolio owner.
package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/savanth/folio/pkg/models"
)

// Mailer delivers a contact message. Implementations decide the transport;
// delivery failures surface to the caller so the visitor gets an error
// instead of a silent drop.
type Mailer interface {
	Send(ctx context.Context, msg models.ContactMessage) error
}

// LogMailer writes messages to the application log instead of sending
// email. The default until an SMTP transport is configured; messages are
// recoverable from the log stream.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg models.ContactMessage) error {
	m.log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Str("message", msg.Message).
		Msg("contact message received")
	return nil
}
