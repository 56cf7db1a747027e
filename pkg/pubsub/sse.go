package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultQueueSize is the per-subscriber channel capacity.
const DefaultQueueSize = 100

// TopicConfig configures buffering for a topic.
type TopicConfig struct {
	BufferSize int  // events kept for replay (0 = none)
	ReplayAll  bool // replay the whole buffer instead of only the newest event
}

// SSEPublisher implements Publisher for server-sent events. Delivery never
// blocks: events for a subscriber whose queue is full are dropped.
type SSEPublisher struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*sseSubscription]struct{}
	version       map[string]int
	eventBuffer   map[string][]Event
	topicConfig   map[string]TopicConfig
	closed        bool
	logger        *log.Logger
}

// NewSSEPublisher creates a publisher. A nil logger discards output.
func NewSSEPublisher(logger *log.Logger) *SSEPublisher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SSEPublisher{
		subscriptions: make(map[string]map[*sseSubscription]struct{}),
		version:       make(map[string]int),
		eventBuffer:   make(map[string][]Event),
		topicConfig:   make(map[string]TopicConfig),
		logger:        logger,
	}
}

// ConfigureTopic sets buffering for topic.
func (p *SSEPublisher) ConfigureTopic(topic string, config TopicConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topicConfig[topic] = config
}

// Subscribe registers a subscriber and replays buffered events to it.
func (p *SSEPublisher) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("publisher is closed")
	}

	sub := &sseSubscription{
		id:        uuid.New(),
		topic:     topic,
		events:    make(chan Event, DefaultQueueSize),
		publisher: p,
	}
	if p.subscriptions[topic] == nil {
		p.subscriptions[topic] = make(map[*sseSubscription]struct{})
	}
	p.subscriptions[topic][sub] = struct{}{}

	replay := p.eventBuffer[topic]
	if !p.topicConfig[topic].ReplayAll && len(replay) > 0 {
		replay = replay[len(replay)-1:]
	}
	// Sent under the lock so a concurrent Publish cannot overtake the replay.
	for _, event := range replay {
		select {
		case sub.events <- event:
		default:
			p.logger.Warn("replay dropped", "topic", topic, "subscriber", sub.id)
		}
	}
	p.mu.Unlock()

	if len(replay) > 0 {
		p.logger.Debug("replayed events", "topic", topic, "count", len(replay), "subscriber", sub.id)
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

// Publish marshals data and sends it to every subscriber of topic.
func (p *SSEPublisher) Publish(topic, eventType string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	p.version[topic]++
	event := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    jsonData,
		Version: p.version[topic],
	}

	if size := p.topicConfig[topic].BufferSize; size > 0 {
		buffer := append(p.eventBuffer[topic], event)
		if len(buffer) > size {
			buffer = buffer[len(buffer)-size:]
		}
		p.eventBuffer[topic] = buffer
	}

	for sub := range p.subscriptions[topic] {
		select {
		case sub.events <- event:
		default:
			p.logger.Warn("subscriber queue full, dropping event", "topic", topic, "subscriber", sub.id)
		}
	}
	return nil
}

// Subscribers returns the number of live subscriptions to topic.
func (p *SSEPublisher) Subscribers(topic string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscriptions[topic])
}

// Close shuts the publisher down and closes every subscription's channel.
func (p *SSEPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for _, subs := range p.subscriptions {
		for sub := range subs {
			close(sub.events)
		}
	}
	p.subscriptions = make(map[string]map[*sseSubscription]struct{})
	return nil
}

func (p *SSEPublisher) unsubscribe(sub *sseSubscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if subs := p.subscriptions[sub.topic]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(p.subscriptions, sub.topic)
		}
	}
}

type sseSubscription struct {
	id        uuid.UUID
	topic     string
	events    chan Event
	publisher *SSEPublisher

	mu     sync.Mutex
	closed bool
}

func (s *sseSubscription) ID() uuid.UUID        { return s.id }
func (s *sseSubscription) Topic() string        { return s.topic }
func (s *sseSubscription) Events() <-chan Event { return s.events }

// Close unsubscribes. The events channel is left open; readers stop on
// their own context.
func (s *sseSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.publisher.unsubscribe(s)
	return nil
}

// WriteSSE writes event in text/event-stream format.
func WriteSSE(w io.Writer, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.Version, event.Type, jsonData)
	return err
}
