// Package mailer sends notification emails over SMTP. The storefront uses
// it for enquiry notifications to the sales inbox; delivery is always best
// effort.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer holds SMTP connection settings.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

// New creates a Mailer. Returns nil when host is empty, which disables
// mail entirely (callers treat a nil Mailer as "don't send").
func New(host, port, username, password string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{Host: host, Port: port, Username: username, Password: password}
}

// Send sends an email. The Content-Type is inferred from the body: simple
// HTML markers switch it to text/html.
func (m *Mailer) Send(recipient, sender, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if sender == "" {
		return fmt.Errorf("sender email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=UTF-8"
	if strings.Contains(strings.ToLower(body), "<html>") || strings.Contains(strings.ToLower(body), "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, sender, subject, contentType, body))

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	if err := smtp.SendMail(m.Host+":"+m.Port, auth, sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
