package rexslog

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] fanning log output out to any number of
// subscribers, so one slog handler can feed several sinks at once (a
// tool's stderr, a log file, a TUI pane) without the producing side ever
// blocking on a slow consumer.
//
// Delivery is per-subscriber ring-buffered: each [Subscription] holds a
// buffered channel, and when it is full the oldest entry is discarded in
// favor of the new one. A subscriber that stops reading therefore loses
// old lines, never stalls the writer. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	bufSize int
	closed  bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets how many entries each subscription buffers before
// old ones are discarded. Values below 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// NewPublisher creates a Publisher. The default per-subscriber buffer
// holds 64 entries.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		subs:    make(map[*Subscription]struct{}),
		bufSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write delivers a copy of b to every live subscriber and reaps the ones
// that closed themselves since the last call. It always reports b as
// fully written.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	entry := make([]byte, len(b))
	copy(entry, b)

	for sub := range p.subs {
		if sub.done.Load() {
			delete(p.subs, sub)
			close(sub.ch)

			continue
		}

		sub.deliver(entry)
	}

	return len(b), nil
}

// Subscribe registers a new [Subscription]. Subscribing to an already
// closed Publisher yields a subscription whose channel is closed.
func (p *Publisher) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan []byte, p.bufSize)}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		close(sub.ch)

		return sub
	}

	p.subs[sub] = struct{}{}

	return sub
}

// Close shuts the Publisher down: every subscription channel is closed
// and later Writes are discarded. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	for sub := range p.subs {
		close(sub.ch)
	}

	p.subs = nil

	return nil
}

// Subscription is one subscriber's view of a [Publisher].
type Subscription struct {
	ch   chan []byte
	done atomic.Bool
}

// deliver enqueues entry, discarding the oldest buffered entry when the
// channel is full. Only the Publisher calls this, under its lock, so the
// receive-then-send pair cannot race with another producer.
func (s *Subscription) deliver(entry []byte) {
	select {
	case s.ch <- entry:
	default:
		<-s.ch
		s.ch <- entry
	}
}

// C returns the channel log entries arrive on. The delivered slices are
// owned by the subscriber and must not be modified.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close marks the subscription done. The Publisher reaps it (and closes
// the channel) on its next Write or Close. Idempotent.
func (s *Subscription) Close() {
	s.done.Store(true)
}
