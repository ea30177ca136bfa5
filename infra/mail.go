package infra

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/tnqbao/gau-showcase-service/config"
)

var ErrMailDelivery = errors.New("mail delivery failed")

type MailMessage struct {
	From    string
	ReplyTo string
	To      string
	Subject string
	Body    string
	// Username and Password override the relay's own SMTP credentials.
	Username string
	Password string
}

type MailRelay interface {
	Send(ctx context.Context, msg MailMessage) error
}

type SMTPRelay struct {
	Host     string
	Port     string
	Username string
	Password string
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPRelay(cfg *config.EnvConfig) *SMTPRelay {
	return &SMTPRelay{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUsername,
		Password: cfg.Mail.SMTPPassword,
		sendMail: smtp.SendMail,
	}
}

func (r *SMTPRelay) Send(ctx context.Context, msg MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	username, password := r.Username, r.Password
	if msg.Username != "" && msg.Password != "" {
		username, password = msg.Username, msg.Password
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, r.Host)
	}

	addr := r.Host + ":" + r.Port
	if err := r.sendMail(addr, auth, msg.From, []string{msg.To}, buildMIMEMessage(msg)); err != nil {
		return fmt.Errorf("%w: smtp %s: %v", ErrMailDelivery, addr, err)
	}
	return nil
}

func buildMIMEMessage(msg MailMessage) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	if msg.ReplyTo != "" {
		b.WriteString("Reply-To: " + msg.ReplyTo + "\r\n")
	}
	b.WriteString("Subject: " + sanitizeHeader(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// sanitizeHeader keeps user input from injecting extra headers.
func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}

// SendGridRelay always sends from the verified sender address; per-message
// credentials are ignored.
type SendGridRelay struct {
	client *sendgrid.Client
	from   string
}

func NewSendGridRelay(cfg *config.EnvConfig) *SendGridRelay {
	return &SendGridRelay{
		client: sendgrid.NewSendClient(cfg.Mail.SendGridAPIKey),
		from:   cfg.Mail.FromAddress,
	}
}

func (r *SendGridRelay) Send(ctx context.Context, msg MailMessage) error {
	sender := r.from
	if sender == "" {
		sender = msg.From
	}
	from := mail.NewEmail("Showcase", sender)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	response, err := r.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrMailDelivery, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrMailDelivery, response.StatusCode, response.Body)
	}
	return nil
}

func InitMailRelay(cfg *config.EnvConfig) MailRelay {
	if cfg.Mail.Relay == "sendgrid" {
		return NewSendGridRelay(cfg)
	}
	return NewSMTPRelay(cfg)
}

type ContactEmail struct {
	SenderEmail    string
	SenderPassword string
	Subject        string
	Message        string
}

type ContactPublisher interface {
	PublishContactEmail(ctx context.Context, senderEmail, subject, content string) error
}

// Mailer delivers contact-form mail either synchronously through a relay or
// by handing it to the queue for the consumer.
type Mailer struct {
	relay     MailRelay
	publisher ContactPublisher
	from      string
	recipient string
}

func NewMailer(relay MailRelay, publisher ContactPublisher, from, recipient string) *Mailer {
	if recipient == "" {
		recipient = from
	}
	return &Mailer{
		relay:     relay,
		publisher: publisher,
		from:      from,
		recipient: recipient,
	}
}

func (m *Mailer) Queued() bool {
	return m.publisher != nil
}

func (m *Mailer) Send(ctx context.Context, email ContactEmail) error {
	if m.publisher != nil {
		if err := m.publisher.PublishContactEmail(ctx, email.SenderEmail, email.Subject, email.Message); err != nil {
			return fmt.Errorf("%w: %v", ErrMailDelivery, err)
		}
		return nil
	}
	return m.Deliver(ctx, email)
}

// Deliver relays the mail immediately. With sender credentials the message is
// sent as the sender, otherwise from the configured address with the sender
// as reply-to.
func (m *Mailer) Deliver(ctx context.Context, email ContactEmail) error {
	msg := MailMessage{
		From:    m.from,
		ReplyTo: email.SenderEmail,
		To:      m.recipient,
		Subject: email.Subject,
		Body:    email.Message,
	}
	if email.SenderPassword != "" {
		msg.From = email.SenderEmail
		msg.Username = email.SenderEmail
		msg.Password = email.SenderPassword
		if msg.To == "" {
			msg.To = email.SenderEmail
		}
	}
	if msg.From == "" || msg.To == "" {
		return fmt.Errorf("%w: no sender or recipient configured", ErrMailDelivery)
	}
	return m.relay.Send(ctx, msg)
}
