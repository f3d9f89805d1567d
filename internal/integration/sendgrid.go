package integration

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker"
)

// EmailSender delivers e-mail.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, plain, html string) error
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client  *sendgrid.Client
	from    *mail.Email
	sandbox bool
	cb      *gobreaker.CircuitBreaker
}

func NewSendGridSender(apiKey, fromEmail, fromName string, sandbox bool) *SendGridSender {
	return &SendGridSender{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(fromName, fromEmail),
		sandbox: sandbox,
		cb:      newBreaker("sendgrid"),
	}
}

func (s *SendGridSender) SendEmail(ctx context.Context, to, subject, plain, html string) error {
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), plain, html)
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	_, err := guarded(s.cb, func() (int, error) {
		resp, err := s.client.SendWithContext(ctx, msg)
		if err != nil {
			return 0, err
		}
		if resp.StatusCode >= 400 {
			return resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, resp.Body)
		}
		return resp.StatusCode, nil
	})
	return err
}
