// Package pubsub fans out graph events to server-sent-event subscribers.
package pubsub

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Topics published by graphwalk.
const (
	TopicFrames  = "frames"  // every composed render.Frame
	TopicActions = "actions" // action reports
)

// Event is one published message.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"` // e.g. "frame", "report"
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"` // per-topic, increasing
}

// Subscription receives events for a single topic.
type Subscription interface {
	ID() uuid.UUID
	Topic() string
	Events() <-chan Event
	Close() error
}

// Publisher manages subscriptions and event delivery.
type Publisher interface {
	// Subscribe registers for topic. Canceling ctx closes the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)
	Publish(topic, eventType string, data any) error
	Close() error
}
