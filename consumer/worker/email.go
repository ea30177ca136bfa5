package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/infra/produce"
)

const maxDeliveryAttempts = 3

type ContactDeliverer interface {
	Deliver(ctx context.Context, email infra.ContactEmail) error
}

// EmailConsumer relays queued contact-form mail with the server's own relay
// credentials.
type EmailConsumer struct {
	channel    *amqp.Channel
	mailer     ContactDeliverer
	logger     *infra.LoggerClient
	retryDelay time.Duration
}

func NewEmailConsumer(channel *amqp.Channel, mailer ContactDeliverer, logger *infra.LoggerClient) *EmailConsumer {
	return &EmailConsumer{
		channel:    channel,
		mailer:     mailer,
		logger:     logger,
		retryDelay: 2 * time.Second,
	}
}

func (c *EmailConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.ContactEmailQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register contact email consumer: %w", err)
	}

	c.logger.InfoWithContextf(ctx, "[Email Consumer] Started listening on queue: %s", produce.ContactEmailQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.InfoWithContextf(ctx, "[Email Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.WarningWithContextf(ctx, "[Email Consumer] Channel closed")
					return
				}
				c.handleContactEmail(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *EmailConsumer) handleContactEmail(ctx context.Context, msg amqp.Delivery) {
	var payload produce.ContactEmailMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.logger.ErrorWithContextf(ctx, err, "[Email Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}
	if strings.TrimSpace(payload.SenderEmail) == "" || strings.TrimSpace(payload.Subject) == "" {
		c.logger.WarningWithContextf(ctx, "[Email Consumer] Dropping incomplete contact email")
		_ = msg.Nack(false, false)
		return
	}

	email := infra.ContactEmail{
		SenderEmail: payload.SenderEmail,
		Subject:     payload.Subject,
		Message:     payload.Message,
	}

	var err error
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		err = c.mailer.Deliver(ctx, email)
		if err == nil {
			c.logger.InfoWithContextf(ctx, "[Email Consumer] Delivered contact email from %s", payload.SenderEmail)
			_ = msg.Ack(false)
			return
		}

		c.logger.ErrorWithContextf(ctx, err, "[Email Consumer] Attempt %d/%d failed: %v", attempt, maxDeliveryAttempts, err)

		if attempt < maxDeliveryAttempts {
			select {
			case <-ctx.Done():
				_ = msg.Nack(false, true)
				return
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
	}

	// one requeue per message; a redelivered failure is dropped
	if msg.Redelivered {
		c.logger.ErrorWithContextf(ctx, err, "[Email Consumer] Dropping contact email from %s after redelivery", payload.SenderEmail)
		_ = msg.Nack(false, false)
		return
	}
	c.logger.ErrorWithContextf(ctx, err, "[Email Consumer] Failed after %d attempts, requeueing message", maxDeliveryAttempts)
	_ = msg.Nack(false, true)
}
