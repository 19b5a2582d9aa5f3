// Package mailer delivers outbound email. When SMTP is not configured the
// service degrades to a logged skip so signup flows keep working in
// development.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"estates/internal/config"
)

// Service sends account emails. Send results are booleans, not errors: a
// failed delivery is logged and reported, never fatal to the request.
type Service interface {
	SendVerification(recipient, token string, expiresAt time.Time) bool
}

type service struct {
	settings *config.Settings
}

// NewService creates a new mailer Service.
func NewService(settings *config.Settings) Service {
	return &service{settings: settings}
}

// BuildVerificationURL returns the frontend link embedded in the email.
func BuildVerificationURL(frontendBase, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(frontendBase, "/"), token)
}

func (s *service) SendVerification(recipient, token string, expiresAt time.Time) bool {
	if s.settings.SMTPHost == "" || s.settings.MailFrom == "" {
		log.Printf("mail not configured; skipping verification email. recipient=%s token=%s", recipient, token)
		return false
	}

	verifyURL := BuildVerificationURL(s.settings.FrontendBaseURL, token)
	subject := fmt.Sprintf("%s – Verify your email", s.settings.ProjectName)

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", s.settings.MailFrom)
	fmt.Fprintf(&body, "To: %s\r\n", recipient)
	fmt.Fprintf(&body, "Subject: %s\r\n\r\n", subject)
	fmt.Fprintf(&body, "Hello,\r\n\r\n")
	fmt.Fprintf(&body, "Thanks for signing up with %s. Please verify your email address.\r\n", s.settings.ProjectName)
	fmt.Fprintf(&body, "Verification link: %s\r\n", verifyURL)
	fmt.Fprintf(&body, "This link expires at %s.\r\n", expiresAt.Format(time.RFC1123))
	if s.settings.SupportEmail != "" {
		fmt.Fprintf(&body, "If you did not request this, contact %s\r\n", s.settings.SupportEmail)
	}

	addr := s.settings.SMTPHost + ":" + s.settings.SMTPPort
	var auth smtp.Auth
	if s.settings.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.settings.SMTPUsername, s.settings.SMTPPassword, s.settings.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.settings.MailFrom, []string{recipient}, []byte(body.String())); err != nil {
		log.Printf("failed to send verification email to %s: %v", recipient, err)
		return false
	}

	log.Printf("verification email queued for %s", recipient)
	return true
}
