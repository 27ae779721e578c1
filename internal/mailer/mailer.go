// Package mailer delivers OTP emails over SMTP.
package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/sitescope/backend/internal/db"
)

// Mailer sends transactional email. An unconfigured mailer reports itself
// as such instead of failing requests; callers surface delivery as a flag.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromEnv builds a mailer from SMTP_* environment variables.
func NewFromEnv() *Mailer {
	port := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if parsed, err := strconv.Atoi(portStr); err == nil {
			port = parsed
		}
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "noreply@sitescope.app"
	}

	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

// Configured reports whether an SMTP host is set.
func (m *Mailer) Configured() bool {
	return m.host != ""
}

// SendOTP emails the code for the given purpose.
func (m *Mailer) SendOTP(to, code, purpose string) error {
	if !m.Configured() {
		return fmt.Errorf("email transport not configured")
	}

	var subject, body string
	switch purpose {
	case db.PurposeRegistration:
		subject = "Welcome to SiteScope - Verify Your Email"
		body = fmt.Sprintf(`Hello,

Welcome to SiteScope!

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't request this, please ignore this email.

Best regards,
SiteScope Team
`, code)
	case db.PurposePasswordReset:
		subject = "SiteScope - Password Reset Request"
		body = fmt.Sprintf(`Hello,

We received a request to reset your password.

Your password reset code is: %s

This code will expire in 10 minutes.

If you didn't request this, please ignore this email and your password will remain unchanged.

Best regards,
SiteScope Team
`, code)
	default:
		return fmt.Errorf("invalid OTP purpose: %s", purpose)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
