package infra

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRelay struct {
	sent []MailMessage
	err  error
}

func (r *recordingRelay) Send(ctx context.Context, msg MailMessage) error {
	r.sent = append(r.sent, msg)
	return r.err
}

type recordingPublisher struct {
	sender, subject, content string
	calls                    int
}

func (p *recordingPublisher) PublishContactEmail(ctx context.Context, senderEmail, subject, content string) error {
	p.calls++
	p.sender, p.subject, p.content = senderEmail, subject, content
	return nil
}

func TestSMTPRelay_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody string
	var gotAuth smtp.Auth

	relay := &SMTPRelay{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "server@example.com",
		Password: "server-secret",
		sendMail: func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotAuth, gotFrom, gotTo, gotBody = addr, auth, from, to, string(msg)
			return nil
		},
	}

	err := relay.Send(context.Background(), MailMessage{
		From:    "site@example.com",
		ReplyTo: "visitor@example.com",
		To:      "owner@example.com",
		Subject: "Hello\r\nBcc: victim@example.com",
		Body:    "Interested in a villa.",
	})

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "site@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Reply-To: visitor@example.com\r\n")
	assert.Contains(t, gotBody, "Subject: Hello  Bcc: victim@example.com\r\n")
	assert.False(t, strings.Contains(gotBody, "\r\nBcc:"), "subject must not inject headers")
	assert.True(t, strings.HasSuffix(gotBody, "\r\n\r\nInterested in a villa."))
}

func TestSMTPRelay_WrapsFailures(t *testing.T) {
	relay := &SMTPRelay{
		Host: "smtp.example.com",
		Port: "587",
		sendMail: func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			return errors.New("535 authentication failed")
		},
	}

	err := relay.Send(context.Background(), MailMessage{From: "a@example.com", To: "b@example.com"})

	assert.ErrorIs(t, err, ErrMailDelivery)
}

func TestMailer_DeliverWithServerCredentials(t *testing.T) {
	relay := &recordingRelay{}
	mailer := NewMailer(relay, nil, "site@example.com", "owner@example.com")

	err := mailer.Send(context.Background(), ContactEmail{
		SenderEmail: "visitor@example.com",
		Subject:     "Quote",
		Message:     "Hi",
	})

	require.NoError(t, err)
	require.Len(t, relay.sent, 1)
	msg := relay.sent[0]
	assert.Equal(t, "site@example.com", msg.From)
	assert.Equal(t, "visitor@example.com", msg.ReplyTo)
	assert.Equal(t, "owner@example.com", msg.To)
	assert.Empty(t, msg.Password)
}

func TestMailer_DeliverAsSender(t *testing.T) {
	relay := &recordingRelay{}
	mailer := NewMailer(relay, nil, "", "owner@example.com")

	err := mailer.Send(context.Background(), ContactEmail{
		SenderEmail:    "visitor@gmail.com",
		SenderPassword: "app-password",
		Subject:        "Quote",
		Message:        "Hi",
	})

	require.NoError(t, err)
	msg := relay.sent[0]
	assert.Equal(t, "visitor@gmail.com", msg.From)
	assert.Equal(t, "visitor@gmail.com", msg.Username)
	assert.Equal(t, "app-password", msg.Password)
}

func TestMailer_QueueNeverCarriesPassword(t *testing.T) {
	relay := &recordingRelay{}
	publisher := &recordingPublisher{}
	mailer := NewMailer(relay, publisher, "site@example.com", "owner@example.com")

	err := mailer.Send(context.Background(), ContactEmail{
		SenderEmail:    "visitor@example.com",
		SenderPassword: "secret",
		Subject:        "Quote",
		Message:        "Hi",
	})

	require.NoError(t, err)
	assert.True(t, mailer.Queued())
	assert.Equal(t, 1, publisher.calls)
	assert.Equal(t, "visitor@example.com", publisher.sender)
	assert.Empty(t, relay.sent, "queued mail is relayed by the consumer")
}

func TestMailer_RequiresAddresses(t *testing.T) {
	mailer := NewMailer(&recordingRelay{}, nil, "", "")

	err := mailer.Deliver(context.Background(), ContactEmail{SenderEmail: "visitor@example.com", Subject: "s"})

	assert.ErrorIs(t, err, ErrMailDelivery)
}
