// Package feed carries the receivable-payment change feed: a bounded
// in-process stream that notifies subscribers when a payment status flips.
package feed

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

// PaymentChange is the change-feed payload. It is deliberately partial;
// consumers re-fetch the full row before acting on it.
type PaymentChange struct {
	PaymentID snowflake.ID `json:"payment_id"`
	Status    string       `json:"status"`
	ChangedAt time.Time    `json:"changed_at"`
}

type Hub struct {
	mu               sync.Mutex
	buffer           []PaymentChange
	subs             map[uint64]chan PaymentChange
	nextID           uint64
	bufferSize       int
	subscriberBuffer int
}

type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan PaymentChange
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subs:             make(map[uint64]chan PaymentChange),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish fans a change out to every subscriber. Slow subscribers drop
// events rather than block the publisher.
func (h *Hub) Publish(change PaymentChange) {
	if h == nil {
		return
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, change)
	if len(h.buffer) > h.bufferSize {
		h.buffer = h.buffer[len(h.buffer)-h.bufferSize:]
	}
	subs := make([]chan PaymentChange, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// Subscribe returns a live subscription plus the buffered backlog.
func (h *Hub) Subscribe() (*Subscription, []PaymentChange, error) {
	if h == nil {
		return nil, nil, errors.New("hub_unavailable")
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan PaymentChange, h.subscriberBuffer)
	h.subs[id] = ch
	backlog := append([]PaymentChange(nil), h.buffer...)
	h.mu.Unlock()

	return &Subscription{hub: h, id: id, ch: ch}, backlog, nil
}

func (h *Hub) unsubscribe(id uint64) {
	if h == nil {
		return
	}
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan PaymentChange {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
