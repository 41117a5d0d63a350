// Package mailer delivers outbound email through an external sending endpoint.
package mailer

import (
	"context"
	"fmt"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	ReplyTo string `json:"replyTo,omitempty"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const PasswordResetSubject = "Password Reset Request"

const passwordResetTemplate = `
<h2>Password Reset Request</h2>
<p>You recently requested to reset your password. Click the link below to reset it:</p>
<p><a href="%s" style="padding: 10px 20px; background-color: #4f46e5; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
<p>If you didn't request this, please ignore this email.</p>
<p>This link will expire in 1 hour for security purposes.</p>
`

func PasswordResetMessage(to, resetLink string) Message {
	return Message{
		To:      to,
		Subject: PasswordResetSubject,
		Content: fmt.Sprintf(passwordResetTemplate, resetLink),
	}
}

func SendPasswordResetEmail(ctx context.Context, m Mailer, to, resetLink string) error {
	if err := m.Send(ctx, PasswordResetMessage(to, resetLink)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
