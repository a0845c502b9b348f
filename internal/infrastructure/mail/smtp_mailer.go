package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"revebot.backend/internal/config"
	"revebot.backend/internal/domain/entities"
)

// SMTPMailer sends operational notification mail over plain SMTP. The ops
// recipient is fixed from configuration; merchants never receive mail from
// this service.
type SMTPMailer struct {
	cfg  config.MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// SendMerchantRegistered notifies operations that a merchant finished
// onboarding and is waiting for review.
func (m *SMTPMailer) SendMerchantRegistered(ctx context.Context, merchant *entities.Merchant) error {
	subject := fmt.Sprintf("New store registered: %s", merchant.BusinessName)

	var body strings.Builder
	fmt.Fprintf(&body, "Merchant %s (%s) submitted their store for review.\r\n\r\n", merchant.BusinessName, merchant.Domain)
	fmt.Fprintf(&body, "Merchant ID: %s\r\n", merchant.ID)
	fmt.Fprintf(&body, "Package: %s\r\n", merchant.Package)
	fmt.Fprintf(&body, "Phone: %s\r\n", merchant.Phone)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s <%s>\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.FromName, m.cfg.FromAddress, m.cfg.OpsName, m.cfg.OpsAddress, subject, body.String())

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	return m.send(addr, auth, m.cfg.FromAddress, []string{m.cfg.OpsAddress}, []byte(msg))
}
