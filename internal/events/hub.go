// Package events fans out storage change notifications.
//
// The Hub is in-process: storage publishes after every committed write and
// live read streams subscribe to re-query. A NATSMirror can forward the same
// changes to a NATS server for out-of-process consumers.
package events

import (
	"sync"
	"time"
)

// Topic names the table family a change touched.
type Topic string

const (
	TopicCreatures    Topic = "creatures"
	TopicObservations Topic = "observations"
	TopicPreferences  Topic = "preferences"
)

// Op is the kind of write.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed write.
type Change struct {
	Topic Topic
	Op    Op

	// ID is the row affected. Zero for bulk deletes.
	ID int64

	// ParentID is the owning row: category for creatures, creature for
	// observations. Zero when unknown.
	ParentID int64

	// Owner is set for preference changes.
	Owner string

	At time.Time
}

type subscription struct {
	ch   chan Change
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub broadcasts changes to subscribers of a topic.
//
// Delivery is coalescing: each subscriber has a one-slot buffer and a
// pending notification absorbs later ones. Subscribers are expected to
// re-read state rather than replay individual changes.
type Hub struct {
	mu     sync.Mutex
	subs   map[Topic]map[*subscription]struct{}
	hooks  []func(Change)
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[*subscription]struct{})}
}

// Subscribe registers for changes on topic. The returned cancel function
// unregisters and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(topic Topic) (<-chan Change, func()) {
	sub := &subscription{ch: make(chan Change, 1)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[topic], sub)
		h.mu.Unlock()
		sub.close()
	}
	return sub.ch, cancel
}

// OnPublish registers fn to be called synchronously for every change.
// Hooks must not block.
func (h *Hub) OnPublish(fn func(Change)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, fn)
}

// Publish notifies subscribers of c.Topic and runs the hooks. It never blocks.
func (h *Hub) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for sub := range h.subs[c.Topic] {
		select {
		case sub.ch <- c:
		default:
			// a notification is already pending
		}
	}
	for _, fn := range h.hooks {
		fn(c)
	}
}

// Close closes every subscription. Later Subscribe calls get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for sub := range subs {
			sub.close()
		}
	}
	h.subs = nil
}
