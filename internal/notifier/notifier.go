package notifier

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nkapoor/interview-coach-api/internal/mailer"
)

type JobKind string

const (
	KindBookingConfirmed JobKind = "booking.confirmed"
	KindBookingUpdated   JobKind = "booking.updated"
	KindBookingResend    JobKind = "booking.resend"
	KindContactReceived  JobKind = "booking.contact"
)

// Job is one notification to deliver. It is what goes over the wire when a
// queue is configured.
type Job struct {
	Kind    JobKind               `json:"kind"`
	Payload mailer.BookingPayload `json:"payload"`
}

type Publisher interface {
	Publish(routingKey string, payload any) error
}

type Sender interface {
	SendBookingNotification(p mailer.BookingPayload) error
	SendBookingUpdate(p mailer.BookingPayload) error
}

// Dispatcher hands notification jobs off for delivery. With a publisher it
// goes through RabbitMQ; without one it falls back to a direct goroutine.
// Either way dispatch is fire-and-forget: a failed notification never rolls
// back the booking change that triggered it.
type Dispatcher struct {
	publisher Publisher
	sender    Sender
}

func NewDispatcher(publisher Publisher, sender Sender) *Dispatcher {
	return &Dispatcher{publisher: publisher, sender: sender}
}

func (d *Dispatcher) Dispatch(job Job) {
	if d.publisher != nil {
		if err := d.publisher.Publish(string(job.Kind), job); err == nil {
			return
		} else {
			log.Printf("[Notifier] queue publish failed, sending directly: %v", err)
		}
	}
	go d.send(job)
}

func (d *Dispatcher) send(job Job) {
	if d.sender == nil {
		return
	}
	var err error
	switch job.Kind {
	case KindBookingUpdated:
		err = d.sender.SendBookingUpdate(job.Payload)
	default:
		err = d.sender.SendBookingNotification(job.Payload)
	}
	if err != nil {
		log.Printf("[Notifier] failed to deliver %s notification: %v", job.Kind, err)
	}
}

// StartConsumer drains queued notification jobs and delivers them through the
// sender. Undecodable messages are dropped; delivery failures are logged and
// acked, since mail is best-effort and requeueing a dead address would loop.
func (d *Dispatcher) StartConsumer(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			d.handleMessage(msg)
		}
		log.Println("[Notifier] channel closed, stopping consumer")
	}()
}

func (d *Dispatcher) handleMessage(msg amqp.Delivery) {
	var job Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.Printf("[Notifier] failed to unmarshal job: %v", err)
		msg.Nack(false, false)
		return
	}
	d.send(job)
	msg.Ack(false)
}
