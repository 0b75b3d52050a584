// Package notification delivers account and transfer events to the
// notification collaborator. Delivery is fire-and-forget: a failed send is
// retried with backoff and then dropped, never unwinding committed state.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/banka1/banking-service/internal/logger"
)

type Message struct {
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Type      string `json:"type"`
}

// NewEmail builds an email message addressed to a customer.
func NewEmail(subject, email, body, firstName, lastName string) Message {
	return Message{
		Subject:   subject,
		Email:     email,
		Message:   body,
		FirstName: firstName,
		LastName:  lastName,
		Type:      "email",
	}
}

// Sender is the transport to the notification service.
type Sender interface {
	Send(ctx context.Context, destination string, msg Message) error
}

// Notifier is what the services depend on.
type Notifier interface {
	Notify(msg Message)
}

// Dispatcher queues messages and delivers them on a background goroutine,
// retrying each send with exponential backoff.
type Dispatcher struct {
	sender      Sender
	destination string
	queue       chan Message
	maxRetries  uint64
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

func NewDispatcher(sender Sender, destination string, maxRetries int) *Dispatcher {
	if maxRetries < 0 {
		maxRetries = 0
	}

	d := &Dispatcher{
		sender:      sender,
		destination: destination,
		queue:       make(chan Message, 256),
		maxRetries:  uint64(maxRetries),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Notify enqueues the message without blocking the caller. A full queue
// drops the message; the transfer it belongs to has already committed.
func (d *Dispatcher) Notify(msg Message) {
	select {
	case d.queue <- msg:
	default:
		logger.Error("notification queue full, message dropped", nil, logger.Fields{
			"subject": msg.Subject,
		})
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return d.sender.Send(ctx, d.destination, msg)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.maxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.Error("notification delivery failed", err, logger.Fields{
			"subject":     msg.Subject,
			"destination": d.destination,
		})
		return
	}

	logger.Info("notification delivered", logger.Fields{
		"subject":     msg.Subject,
		"destination": d.destination,
	})
}

// LogSender is the default transport when no broker is configured; it only
// records the message.
type LogSender struct{}

func (LogSender) Send(_ context.Context, destination string, msg Message) error {
	logger.Info("notification send", logger.Fields{
		"destination": destination,
		"payload":     logger.SanitizePayload(msg),
	})
	return nil
}
