package utils

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional email using the configured SMTP account.
// When Host is empty, sending is disabled and calls become no-ops.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password}
}

// SendApplicationReceived acknowledges a submitted application.
func (m *SMTPMailer) SendApplicationReceived(to, fullName, program string) error {
	subject := "Application Received - American College of Nursing"
	body := fmt.Sprintf(
		"<p>Dear %s,</p>"+
			"<p>Thank you for applying to the <b>%s</b> program at American College of Nursing. "+
			"Your application has been received and is under review.</p>"+
			"<p>We will contact you once a decision has been made.</p>"+
			"<p>Admissions Office<br>American College of Nursing</p>",
		fullName, program)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.Host == "" {
		log.Printf("SMTP not configured, skipping email to %s", to)
		return nil
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.Username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}
