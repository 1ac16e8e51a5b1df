// internal/adapter/events/nats.go

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const flushTimeout = 5 * time.Second

// NATSConfig holds the broker connection settings
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// NATSBus publishes and consumes dataset notifications over NATS
type NATSBus struct {
	conn    *nats.Conn
	subject string
}

// Connect dials the broker with reconnect handling
func Connect(cfg NATSConfig) (*NATSBus, error) {
	options := []nats.Option{
		nats.Name("vizdash"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			zap.L().Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zap.L().Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			zap.L().Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, eris.Wrap(err, "events: unable to connect to NATS")
	}
	return NewNATSBus(nc), nil
}

// NewNATSBus wraps an existing connection
func NewNATSBus(nc *nats.Conn) *NATSBus {
	return &NATSBus{conn: nc, subject: SubjectDatasetUpdated}
}

// PublishDatasetUpdated sends the notification and flushes it to the server
func (b *NATSBus) PublishDatasetUpdated(ctx context.Context, evt DatasetUpdated) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return eris.Wrap(err, "events: marshal dataset update")
	}

	if err := b.conn.Publish(b.subject, data); err != nil {
		return eris.Wrapf(err, "events: publish %s", b.subject)
	}
	// FlushWithContext refuses contexts without a deadline
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := b.conn.FlushWithContext(ctx); err != nil {
		return eris.Wrap(err, "events: flush")
	}
	return nil
}

// SubscribeDatasetUpdated calls fn for every notification. Malformed
// messages are logged and skipped.
func (b *NATSBus) SubscribeDatasetUpdated(fn Handler) (Subscription, error) {
	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		var evt DatasetUpdated
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			zap.L().Warn("dropping malformed dataset update",
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return
		}
		fn(context.Background(), evt)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "events: subscribe %s", b.subject)
	}
	return sub, nil
}

// Close drains subscriptions and closes the connection
func (b *NATSBus) Close() error {
	if b.conn.IsClosed() {
		return nil
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return eris.Wrap(err, "events: drain")
	}
	return nil
}
