// Package notify provides implementations of the library's change broadcast
// port. Notifications are fire-and-forget: delivery failures are logged and
// never surfaced to the mutation that triggered them.
package notify

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(string) {}

// Func adapts a function to the Notifier port. Useful for tests and for
// in-process observers such as a display entity.
type Func func(topic string)

func (f Func) Notify(topic string) { f(topic) }

// NATSPublisher broadcasts change notifications as empty NATS messages on
// the topic subject.
type NATSPublisher struct {
	log *zap.Logger
	nc  *nats.Conn
}

func NewNATS(log *zap.Logger, nc *nats.Conn) *NATSPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &NATSPublisher{log: log, nc: nc}
}

func (p *NATSPublisher) Notify(topic string) {
	if err := p.nc.Publish(topic, nil); err != nil {
		p.log.Warn("notify publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

// Emit publishes a JSON payload on a subject. Used for events that carry
// data, like the box listing broadcast.
func (p *NATSPublisher) Emit(subject string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, b)
}
