package services

import (
	"buildestate-server/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer is a thin SMTP sender. Handlers never call it directly; delivery goes
// through the outbox dispatcher so a slow relay cannot stall a request.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   "BuildEstate <" + cfg.SenderEmail + ">",
	}
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}
