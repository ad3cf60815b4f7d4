package notifications

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"github.com/zatekoja/medicalriskpipeline/pkg/config"
)

// SMTPSender sends plain-text mail through an authenticated outbound relay
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg *config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD must be set")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   from,
	}, nil
}

// Send delivers one plain-text message to a single recipient
func (s *SMTPSender) Send(ctx context.Context, subject, body, recipient string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("recipient", recipient).Str("subject", subject).Msg("Email sent successfully")
	return nil
}
