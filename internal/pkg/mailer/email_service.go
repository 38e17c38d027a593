package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDraft(toEmail, subject, body string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendDraft delivers a generated email draft to the requested
// recipient. The body is plain text from the suggester; line breaks are
// converted for the HTML part.
func (s *emailService) SendDraft(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	htmlBody := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">%s</div>`,
		strings.ReplaceAll(body, "\n", "<br>"),
	)

	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send draft to %s: %w", toEmail, err)
	}

	return nil
}
