package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/eventnow/eventnow_backend/models"
)

// Mailer sends notification emails to the admin inbox. When SMTP is not
// configured it becomes a no-op so submissions still go through.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer builds a Mailer from SMTP settings. Returns nil when host,
// user or recipient are missing, which disables notifications.
func NewMailer(host string, port int, user, pass, from, to string) *Mailer {
	if host == "" || user == "" || to == "" {
		return nil
	}
	if from == "" {
		from = user
	}
	if port == 0 {
		port = 587
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

// SendNewRequestNotification emails the admin inbox about a freshly
// submitted request. Failures are returned to the caller for logging;
// they never block the submission itself.
func (m *Mailer) SendNewRequestNotification(req models.Request) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New event request: %s", req.Subject))
	msg.SetBody("text/html", fmt.Sprintf(`
		<h2>New Event Request</h2>
		<p><strong>Request ID:</strong> %s</p>
		<p><strong>From:</strong> %s %s (%s)</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Message:</strong></p>
		<p>%s</p>
	`, req.RequestID, req.FirstName, req.LastName, req.Email, req.Subject, req.Message))

	return m.dialer.DialAndSend(msg)
}
