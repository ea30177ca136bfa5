package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EmailExchange          = "email_exchange"
	ContactEmailQueue      = "email.contact"
	ContactEmailRoutingKey = "email.contact"
)

// ContactEmailMessage is a queued contact-form submission. The sender's
// password is never part of it; the consumer relays with server credentials.
type ContactEmailMessage struct {
	SenderEmail string `json:"senderEmail"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
}

type EmailService struct {
	channel *amqp.Channel
}

func InitEmailService(channel *amqp.Channel) *EmailService {
	service := &EmailService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		EmailExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Email exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ContactEmailQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare contact email queue: " + err.Error())
	}

	err = channel.QueueBind(
		ContactEmailQueue,
		ContactEmailRoutingKey,
		EmailExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind contact email queue: " + err.Error())
	}

	return service
}

func (s *EmailService) PublishContactEmail(ctx context.Context, senderEmail, subject, content string) error {
	message := ContactEmailMessage{
		SenderEmail: senderEmail,
		Subject:     subject,
		Message:     content,
		Timestamp:   time.Now().Unix(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	err = s.channel.PublishWithContext(
		ctx,
		EmailExchange,
		ContactEmailRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish email message: %w", err)
	}

	return nil
}
