package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/infra/produce"
)

type ackRecorder struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.acked = true
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

type flakyDeliverer struct {
	failures  int
	calls     int
	delivered []infra.ContactEmail
}

func (d *flakyDeliverer) Deliver(_ context.Context, email infra.ContactEmail) error {
	d.calls++
	if d.calls <= d.failures {
		return infra.ErrMailDelivery
	}
	d.delivered = append(d.delivered, email)
	return nil
}

func newTestConsumer(mailer ContactDeliverer) *EmailConsumer {
	consumer := NewEmailConsumer(nil, mailer, infra.NewLoggerClient(slog.NewTextHandler(io.Discard, nil)))
	consumer.retryDelay = time.Millisecond
	return consumer
}

func delivery(t *testing.T, ack amqp.Acknowledger, payload interface{}, redelivered bool) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func contactMessage() produce.ContactEmailMessage {
	return produce.ContactEmailMessage{
		SenderEmail: "client@example.com",
		Subject:     "Villa enquiry",
		Message:     "Interested in a villa.",
		Timestamp:   time.Now().Unix(),
	}
}

func TestHandleContactEmail(t *testing.T) {
	t.Run("delivered and acked", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{}

		newTestConsumer(mailer).handleContactEmail(context.Background(), delivery(t, ack, contactMessage(), false))

		assert.True(t, ack.acked)
		require.Len(t, mailer.delivered, 1)
		assert.Equal(t, "client@example.com", mailer.delivered[0].SenderEmail)
		assert.Empty(t, mailer.delivered[0].SenderPassword)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{failures: 2}

		newTestConsumer(mailer).handleContactEmail(context.Background(), delivery(t, ack, contactMessage(), false))

		assert.True(t, ack.acked)
		assert.Equal(t, 3, mailer.calls)
	})

	t.Run("exhausted attempts requeue once", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{failures: 10}

		newTestConsumer(mailer).handleContactEmail(context.Background(), delivery(t, ack, contactMessage(), false))

		assert.Equal(t, maxDeliveryAttempts, mailer.calls)
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeued)
	})

	t.Run("redelivered failure is dropped", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{failures: 10}

		newTestConsumer(mailer).handleContactEmail(context.Background(), delivery(t, ack, contactMessage(), true))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{}

		newTestConsumer(mailer).handleContactEmail(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
		assert.Zero(t, mailer.calls)
	})

	t.Run("incomplete message is dropped", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{}
		msg := contactMessage()
		msg.Subject = " "

		newTestConsumer(mailer).handleContactEmail(context.Background(), delivery(t, ack, msg, false))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
		assert.Zero(t, mailer.calls)
	})

	t.Run("cancelled context requeues", func(t *testing.T) {
		ack := &ackRecorder{}
		mailer := &flakyDeliverer{failures: 10}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		consumer := newTestConsumer(mailer)
		consumer.retryDelay = time.Hour
		consumer.handleContactEmail(ctx, delivery(t, ack, contactMessage(), false))

		assert.Equal(t, 1, mailer.calls)
		assert.True(t, ack.requeued)
	})
}
