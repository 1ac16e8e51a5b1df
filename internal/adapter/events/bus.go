// internal/adapter/events/bus.go

package events

import (
	"context"
	"time"
)

// SubjectDatasetUpdated is published after the records collection changes
const SubjectDatasetUpdated = "dataset.updated"

// DatasetUpdated notifies consumers that the dataset must be reloaded
type DatasetUpdated struct {
	Source    string    `json:"source"`
	Inserted  int       `json:"inserted"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler receives decoded dataset notifications
type Handler func(ctx context.Context, evt DatasetUpdated)

// Bus carries dataset notifications between processes
type Bus interface {
	PublishDatasetUpdated(ctx context.Context, evt DatasetUpdated) error
	SubscribeDatasetUpdated(fn Handler) (Subscription, error)
	Close() error
}

// Subscription is an active bus subscription
type Subscription interface {
	Unsubscribe() error
}

// NopBus drops every notification. It is used when no broker is configured.
type NopBus struct{}

func (NopBus) PublishDatasetUpdated(context.Context, DatasetUpdated) error { return nil }

func (NopBus) SubscribeDatasetUpdated(Handler) (Subscription, error) { return nopSubscription{}, nil }

func (NopBus) Close() error { return nil }

type nopSubscription struct{}

func (nopSubscription) Unsubscribe() error { return nil }
