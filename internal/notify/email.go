package notify

import (
	"fmt"

	"github.com/go-gomail/gomail"
)

// EmailSender sends HTML mail over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

func (s *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("Appointment Bot <%s>", s.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
