package realtime

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

// collector is a test subscriber target that records every frame it is
// offered.
type collector struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *collector) write(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, frame)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *collector) frame(i int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames[i]
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "chan-all")

	collectors := make([]*collector, 3)
	for i := range collectors {
		collectors[i] = &collector{}
		r.Subscribe(topic, NewSubscriber(collectors[i].write))
	}

	r.Broadcast(topic, ChatMessage{ID: 1, ChannelID: "chan-all", Body: "hi"})

	for i, c := range collectors {
		if c.count() != 1 {
			t.Fatalf("subscriber %d received %d frames, want 1", i, c.count())
		}
	}

	// Every subscriber must get the byte-identical serialized frame.
	for i := 1; i < len(collectors); i++ {
		if !bytes.Equal(collectors[0].frame(0), collectors[i].frame(0)) {
			t.Errorf("subscriber %d frame differs from subscriber 0", i)
		}
	}
}

func TestBroadcastFrameFormat(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "chan-all")
	c := &collector{}
	r.Subscribe(topic, NewSubscriber(c.write))

	sent := ChatMessage{ID: 42, ChannelID: "chan-all", UserID: "u1", UserName: "Ada", Body: "hi", CreatedAt: time.Unix(1700000000, 0).UTC()}
	r.Broadcast(topic, sent)

	if c.count() != 1 {
		t.Fatalf("received %d frames, want 1", c.count())
	}

	frame := string(c.frame(0))
	if !strings.HasPrefix(frame, "event: message\ndata: ") {
		t.Errorf("frame missing event/data framing: %q", frame)
	}
	if !strings.HasSuffix(frame, "\n\n") {
		t.Errorf("frame missing terminating blank line: %q", frame)
	}

	var got ChatMessage
	payload := strings.TrimSuffix(strings.TrimPrefix(frame, "event: message\ndata: "), "\n\n")
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("frame payload is not valid JSON: %v", err)
	}
	if got.ID != sent.ID || got.ChannelID != sent.ChannelID || got.UserID != sent.UserID ||
		got.UserName != sent.UserName || got.Body != sent.Body || !got.CreatedAt.Equal(sent.CreatedAt) {
		t.Errorf("payload = %+v, want %+v", got, sent)
	}
}

func TestSubscribeIdempotentByIdentity(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "chan-all")
	c := &collector{}
	sub := NewSubscriber(c.write)

	r.Subscribe(topic, sub)
	r.Subscribe(topic, sub)

	if r.Count(topic) != 1 {
		t.Errorf("Count = %d, want 1", r.Count(topic))
	}

	r.Broadcast(topic, ChatMessage{ID: 1})
	if c.count() != 1 {
		t.Errorf("received %d frames after duplicate subscribe, want 1", c.count())
	}
}

func TestBroadcastToEmptyTopic(t *testing.T) {
	r := NewRegistry()
	// Must be a silent no-op.
	r.Broadcast(ChatTopic("org-x", "nobody-here"), ChatMessage{ID: 1})
}

func TestCrossTenantIsolation(t *testing.T) {
	r := NewRegistry()
	cA := &collector{}
	cB := &collector{}
	r.Subscribe(ChatTopic("org-x", "all"), NewSubscriber(cA.write))
	r.Subscribe(ChatTopic("org-y", "all"), NewSubscriber(cB.write))

	r.Broadcast(ChatTopic("org-x", "all"), ChatMessage{ID: 1, Body: "hi"})

	if cA.count() != 1 {
		t.Errorf("org-x subscriber received %d frames, want 1", cA.count())
	}
	if cB.count() != 0 {
		t.Errorf("org-y subscriber received %d frames for org-x broadcast, want 0", cB.count())
	}
}

func TestFailingSubscriberDoesNotAffectOthers(t *testing.T) {
	r := NewRegistry()
	topic := TimerTopic("u1")

	before := &collector{}
	after := &collector{}
	r.Subscribe(topic, NewSubscriber(before.write))
	r.Subscribe(topic, NewSubscriber(func([]byte) {
		panic("connection closed")
	}))
	r.Subscribe(topic, NewSubscriber(after.write))

	r.Broadcast(topic, TimerChanged{ID: "t1", Running: true})

	if before.count() != 1 || after.count() != 1 {
		t.Errorf("healthy subscribers received %d and %d frames, want 1 and 1", before.count(), after.count())
	}

	// The failed write must not remove the subscriber.
	if r.Count(topic) != 3 {
		t.Errorf("Count = %d after failed delivery, want 3", r.Count(topic))
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	r := NewRegistry()
	topic := TimerTopic("u1")
	c := &collector{}
	sub := NewSubscriber(c.write)

	r.Subscribe(topic, sub)
	r.Unsubscribe(topic, sub)
	r.Broadcast(topic, TimerChanged{ID: "t1"})

	if c.count() != 0 {
		t.Errorf("received %d frames after unsubscribe, want 0", c.count())
	}
}

func TestUnsubscribeRemovesEmptyTopicEntry(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "all")
	sub := NewSubscriber(func([]byte) {})

	r.Subscribe(topic, sub)
	r.Unsubscribe(topic, sub)

	r.mu.Lock()
	_, exists := r.subs[topic]
	r.mu.Unlock()

	if exists {
		t.Fatal("expected topic entry to be removed after last unsubscribe")
	}
}

func TestDoubleUnsubscribe(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "all")
	stays := NewSubscriber(func([]byte) {})
	leaves := NewSubscriber(func([]byte) {})

	r.Subscribe(topic, stays)
	r.Subscribe(topic, leaves)

	r.Unsubscribe(topic, leaves)
	r.Unsubscribe(topic, leaves)

	if r.Count(topic) != 1 {
		t.Errorf("Count = %d after double unsubscribe, want 1", r.Count(topic))
	}
}

func TestUnsubscribeUnknownTopic(t *testing.T) {
	r := NewRegistry()
	// Must not panic.
	r.Unsubscribe("nonexistent", NewSubscriber(func([]byte) {}))
}

func TestTimerTopicSharedAcrossTimers(t *testing.T) {
	r := NewRegistry()
	c := &collector{}
	r.Subscribe(TimerTopic("u1"), NewSubscriber(c.write))

	// Two different timers owned by the same user broadcast to the same
	// single subscriber.
	r.Broadcast(TimerTopic("u1"), TimerChanged{ID: "timer-a", Running: true})
	r.Broadcast(TimerTopic("u1"), TimerChanged{ID: "timer-b", Running: true})

	if c.count() != 2 {
		t.Errorf("received %d frames, want 2", c.count())
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	topic := ChatTopic("org-x", "all")
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &collector{}
			sub := NewSubscriber(c.write)
			r.Subscribe(topic, sub)
			r.Broadcast(topic, ChatMessage{ID: 1})
			r.Unsubscribe(topic, sub)
		}()
	}

	wg.Wait()

	if r.Count(topic) != 0 {
		t.Errorf("Count = %d after all unsubscribes, want 0", r.Count(topic))
	}
}
