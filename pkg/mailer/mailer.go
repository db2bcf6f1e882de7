package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Mailer sends transactional mail. The only message MoodBloom sends
// today is the password reset link.
type Mailer interface {
	SendPasswordReset(toEmail, token string) error
}

// Config holds SMTP connection details.
type Config struct {
	Host        string
	Port        string
	User        string
	Password    string
	FromEmail   string
	FrontendURL string
}

// SMTPMailer sends mail over plain-auth SMTP.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.User
	}
	return &SMTPMailer{cfg: cfg}
}

var resetTemplate = template.Must(template.New("passwordReset").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Reset your MoodBloom password</h2>
    <p>You requested to reset your password. Click the link below to choose a new one.</p>
    <p><a href="{{.ResetLink}}">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all;">{{.ResetLink}}</p>
    <p>If you didn't request a password reset, you can safely ignore this email. Your password will remain unchanged.</p>
    <p style="font-size: 12px; color: #666;">This link will expire in 1 hour.</p>
</body>
</html>
`))

// SendPasswordReset mails a reset link carrying the token.
func (m *SMTPMailer) SendPasswordReset(toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendURL, token)

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ ResetLink string }{ResetLink: resetLink}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: Reset your password\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		m.cfg.FromEmail, toEmail, body.String(),
	))

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// LogMailer logs instead of sending. Used in development and tests.
type LogMailer struct{}

// SendPasswordReset logs the reset token.
func (LogMailer) SendPasswordReset(toEmail, token string) error {
	log.Printf("Password reset requested for %s (token %s...)", toEmail, token[:min(12, len(token))])
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
