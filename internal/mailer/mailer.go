// Package mailer delivers account confirmation emails.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"rolodex/internal/middleware"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email. Delivery is best-effort: the caller
// fires it from a goroutine and registration never fails on mail errors.
type Mailer interface {
	SendConfirmation(ctx context.Context, toEmail, username, token string) error
}

// SendgridMailer sends email through the SendGrid API.
type SendgridMailer struct {
	apiKey  string
	from    string
	baseURL string
}

// NewSendgridMailer returns a Mailer backed by SendGrid. With an empty API
// key it degrades to a no-op that only logs, which keeps local development
// working without credentials.
func NewSendgridMailer(apiKey, from, baseURL string) *SendgridMailer {
	return &SendgridMailer{apiKey: apiKey, from: from, baseURL: baseURL}
}

// SendConfirmation emails the confirmation link for the given token.
func (m *SendgridMailer) SendConfirmation(ctx context.Context, toEmail, username, token string) error {
	link := fmt.Sprintf("%s/api/auth/confirmed_email/%s", m.baseURL, token)

	if m.apiKey == "" {
		middleware.Logger.InfoContext(ctx, "SENDGRID_API_KEY not set, skipping confirmation email",
			slog.String("to", toEmail), slog.String("link", link))
		return nil
	}

	from := mail.NewEmail("Rolodex", m.from)
	to := mail.NewEmail(username, toEmail)
	subject := "Confirm your email"

	plain := fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening this link:\n%s\n", username, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Confirm your email address by clicking <a href=%q>this link</a>.</p>`, username, link)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(m.apiKey)

	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send confirmation email: sendgrid status %d", resp.StatusCode)
	}

	middleware.Logger.InfoContext(ctx, "confirmation email sent",
		slog.String("to", toEmail), slog.Int("status", resp.StatusCode))
	return nil
}
