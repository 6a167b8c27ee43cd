package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends user-facing notifications. Sending is best-effort; callers
// log failures and move on.
type Mailer interface {
	SendReservationSubmittedEmail(toEmail, propertyTitle string, totalPrice float64) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Email    string
	Password string
}

func NewSMTPMailer(host string, port int, email, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Email: email, Password: password}
}

func (s *SMTPMailer) SendReservationSubmittedEmail(toEmail, propertyTitle string, totalPrice float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.Email)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Reservation Submitted")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your reservation for '%s' has been submitted and is pending confirmation. Total price: $%.2f.",
		propertyTitle, totalPrice))

	d := gomail.NewDialer(s.Host, s.Port, s.Email, s.Password)
	return d.DialAndSend(m)
}
