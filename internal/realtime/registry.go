// Package realtime provides the in-memory pub/sub layer behind the SSE
// streaming endpoints: chat channels, per-user timer feeds, and the global
// activity feed. The registry is local to one process; with multiple
// instances a broadcast only reaches subscribers attached to the same
// instance. Delivery is best-effort and at-most-once: there is no queueing,
// no retry, and no acknowledgment.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Subscriber is an ephemeral handle for one open streaming connection. The
// write callback pushes one serialized SSE frame to the underlying
// connection; it must not block. The registry holds a non-owning reference:
// only an explicit Unsubscribe removes a subscriber, never a failed write.
type Subscriber struct {
	id    string
	write func(frame []byte)
}

// NewSubscriber creates a subscriber handle around a write callback. The ID
// is an opaque token used only for registry membership.
func NewSubscriber(write func(frame []byte)) *Subscriber {
	return &Subscriber{id: uuid.NewString(), write: write}
}

// deliver invokes the write callback, swallowing a panic so one broken
// connection cannot affect delivery to the rest of the topic.
func (s *Subscriber) deliver(frame []byte) {
	defer func() { _ = recover() }()
	s.write(frame)
}

// Registry maps topic keys to live subscriber sets. It is safe for
// concurrent use by many stream sessions and write-path handlers.
type Registry struct {
	mu   sync.Mutex
	subs map[string]map[string]*Subscriber
}

// NewRegistry creates an empty registry. One instance is created in main and
// injected; tests construct their own.
func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[string]map[string]*Subscriber),
	}
}

// Subscribe adds the subscriber to the topic's set, creating the set if
// absent. Adding the same subscriber twice is a no-op: membership is keyed
// by subscriber identity, so it never duplicates delivery.
func (r *Registry) Subscribe(topic string, sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[topic] == nil {
		r.subs[topic] = make(map[string]*Subscriber)
	}
	r.subs[topic][sub.id] = sub
}

// Unsubscribe removes the subscriber from the topic's set. The topic entry
// is deleted once its set is empty, so the map never accumulates dead keys.
// Removing a subscriber that is not present is a no-op.
func (r *Registry) Unsubscribe(topic string, sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.subs[topic]; ok {
		delete(set, sub.id)
		if len(set) == 0 {
			delete(r.subs, topic)
		}
	}
}

// Broadcast serializes the event once and offers the identical frame to
// every subscriber currently registered under the topic. A failure in one
// subscriber's write does not prevent delivery to the rest, and a topic with
// no subscribers is a silent no-op. Broadcast returns once all current
// subscribers have been offered the frame; it never waits for clients.
func (r *Registry) Broadcast(topic string, e Event) {
	frame, err := Encode(e)
	if err != nil {
		slog.Error("realtime: failed to encode event", slog.String("event", e.EventName()), slog.Any("error", err))
		return
	}

	r.mu.Lock()
	set := r.subs[topic]
	targets := make([]*Subscriber, 0, len(set))
	for _, sub := range set {
		targets = append(targets, sub)
	}
	r.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(frame)
	}
}

// Count returns the number of subscribers currently attached to a topic.
func (r *Registry) Count(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[topic])
}
