package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func receive(t *testing.T, sub Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestPublishSubscribe(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicFrames)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	if err := pub.Publish(TopicFrames, "frame", map[string]int{"seq": 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ev := receive(t, sub)
	if ev.Topic != TopicFrames || ev.Type != "frame" || ev.Version != 1 {
		t.Errorf("event = %+v", ev)
	}
	var data map[string]int
	if err := json.Unmarshal(ev.Data, &data); err != nil || data["seq"] != 1 {
		t.Errorf("data = %s (%v)", ev.Data, err)
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames, _ := pub.Subscribe(ctx, TopicFrames)
	actions, _ := pub.Subscribe(ctx, TopicActions)

	_ = pub.Publish(TopicActions, "report", "x")
	_ = pub.Publish(TopicFrames, "frame", "y")

	if ev := receive(t, actions); ev.Topic != TopicActions || ev.Version != 1 {
		t.Errorf("actions event = %+v", ev)
	}
	if ev := receive(t, frames); ev.Topic != TopicFrames || ev.Version != 1 {
		t.Errorf("frames event = %+v", ev)
	}
	select {
	case ev := <-frames.Events():
		t.Errorf("unexpected extra event %+v", ev)
	default:
	}
}

func TestEventBuffer(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	pub.ConfigureTopic("test", TopicConfig{BufferSize: 3, ReplayAll: true})
	for i := 1; i <= 5; i++ {
		if err := pub.Publish("test", "event", i); err != nil {
			t.Fatalf("Publish %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := pub.Subscribe(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}

	for want := 3; want <= 5; want++ {
		if ev := receive(t, sub); ev.Version != want {
			t.Errorf("replayed version = %d, want %d", ev.Version, want)
		}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	pub.ConfigureTopic("test", TopicConfig{BufferSize: 5})
	for i := 1; i <= 3; i++ {
		_ = pub.Publish("test", "event", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, _ := pub.Subscribe(ctx, "test")

	if ev := receive(t, sub); ev.Version != 3 {
		t.Errorf("replayed version = %d, want 3", ev.Version)
	}
	select {
	case ev := <-sub.Events():
		t.Errorf("unexpected extra replay %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNoBufferNoReplay(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	_ = pub.Publish("test", "event", 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, _ := pub.Subscribe(ctx, "test")

	select {
	case ev := <-sub.Events():
		t.Errorf("unexpected replay %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestContextCancelUnsubscribes(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, _ := pub.Subscribe(ctx, TopicFrames)
	if n := pub.Subscribers(TopicFrames); n != 1 {
		t.Fatalf("Subscribers = %d, want 1", n)
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for pub.Subscribers(TopicFrames) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not removed after cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestSubscriberIDsUnique(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, _ := pub.Subscribe(ctx, TopicFrames)
	b, _ := pub.Subscribe(ctx, TopicFrames)
	if a.ID() == b.ID() {
		t.Error("subscriber IDs collide")
	}
}

func TestFullQueueDropsWithoutBlocking(t *testing.T) {
	pub := NewSSEPublisher(nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, _ := pub.Subscribe(ctx, TopicFrames)

	done := make(chan struct{})
	go func() {
		for i := 0; i < DefaultQueueSize+10; i++ {
			_ = pub.Publish(TopicFrames, "frame", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	if n := len(sub.Events()); n != DefaultQueueSize {
		t.Errorf("queued = %d, want %d", n, DefaultQueueSize)
	}
}

func TestClose(t *testing.T) {
	pub := NewSSEPublisher(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, _ := pub.Subscribe(ctx, TopicFrames)

	if err := pub.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-sub.Events(); ok {
		t.Error("events channel should be closed")
	}
	if err := pub.Publish(TopicFrames, "frame", 1); err == nil {
		t.Error("Publish after Close should fail")
	}
	if _, err := pub.Subscribe(ctx, TopicFrames); err == nil {
		t.Error("Subscribe after Close should fail")
	}
	if err := pub.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	ev := Event{Topic: TopicFrames, Type: "frame", Data: json.RawMessage(`{"seq":4}`), Version: 4}
	if err := WriteSSE(&buf, ev); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"id: 4\n", "event: frame\n", `data: {"topic":"frames","type":"frame","data":{"seq":4},"version":4}`} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteSSE output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("event not terminated by blank line: %q", out)
	}
}
