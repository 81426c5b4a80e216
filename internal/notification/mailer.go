// Package notification sends transactional email over SMTP.  The mailer
// is best-effort by contract: callers log failures and move on, a
// reservation or registration is never rolled back because mail could
// not be delivered.
package notification

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/mwrona/restaurant-server/internal/config"
	"github.com/mwrona/restaurant-server/internal/queue"
)

// Mailer sends reservation and account mail through a configured SMTP
// account.  With an empty host it runs disabled and only logs what it
// would have sent, which keeps local development free of SMTP setup.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from injected SMTP settings.
func NewMailer(cfg config.SMTP) *Mailer {
	if cfg.Host == "" {
		log.Printf("mailer: no SMTP host configured, outbound mail disabled")
		return &Mailer{from: cfg.From}
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

// SendConfirmation mails the booking confirmation for a reservation.
func (m *Mailer) SendConfirmation(ev queue.ReservationEvent) error {
	body := fmt.Sprintf(
		"Your reservation has been placed!\n\nReservation details:\nDate: %s\nTime: %s\nParty size: %d\nAdditional info: %s\n\nThank you!",
		ev.Date, ev.StartTime, ev.Seats, orNone(ev.AdditionalInfo))
	return m.send(ev.Email, "Reservation confirmation", body)
}

// SendCancellation mails the cancellation notice for a reservation.
func (m *Mailer) SendCancellation(ev queue.ReservationEvent) error {
	body := fmt.Sprintf(
		"Your reservation has been cancelled.\n\nReservation details:\nDate: %s\nTime: %s\nParty size: %d\nAdditional info: %s\n\nThank you!",
		ev.Date, ev.StartTime, ev.Seats, orNone(ev.AdditionalInfo))
	return m.send(ev.Email, "Reservation cancelled", body)
}

// SendVerification mails the account confirmation link after signup.
func (m *Mailer) SendVerification(email, link string) error {
	body := fmt.Sprintf(
		"Thank you for registering! Open the link below to confirm your account:\n\n%s\n", link)
	return m.send(email, "Registration confirmation", body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.dialer == nil {
		log.Printf("mailer: disabled, skipping %q to %s", subject, to)
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
