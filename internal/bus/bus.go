// Package bus provides an asynchronous fan-out of every side effect
// the orchestrator dispatches, so observers (notably the audit trail,
// internal/audit) can record what happened without sitting in the
// orchestrator's critical path. Adapted from the teacher's
// internal/bus.MessageBus: the same Subscribe/Publish/Dispatch shape,
// narrowed to outbound-only since this domain has no inbound side (the
// organizer surface calls the orchestrator directly, it does not
// arrive as a queued message).
package bus

import (
	"context"
	"sync"
)

// Notification mirrors one orchestrator.Action after it has been
// dispatched to the chat platform (spec §5's "side effects as plans").
type Notification struct {
	TraceID   string
	EventName string
	Kind      int
	ChannelID int64
	MessageID int64
	UserID    int64
	GuildID   int64
	RoleID    int64
	Text      string
}

// Bus decouples the orchestrator from whatever observes its dispatched
// notifications.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Notification)
	out  chan Notification
}

// New returns a Bus with a buffered channel, matching the teacher's
// 100-slot buffer.
func New() *Bus {
	return &Bus{out: make(chan Notification, 100)}
}

// Publish enqueues n for delivery to every subscriber. Never blocks
// the caller on a full channel: to guarantee the orchestrator's
// command path (spec §5) does not stall observing it, n itself is
// dropped when the buffer is full — buffer capacity is sized
// generously instead of adding backpressure here.
func (b *Bus) Publish(n Notification) {
	select {
	case b.out <- n:
	default:
	}
}

// Subscribe registers a callback invoked for every notification
// delivered by Run.
func (b *Bus) Subscribe(fn func(Notification)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Run drains the channel until ctx is cancelled, fanning each
// notification out to every subscriber. Intended to run as a
// goroutine for the lifetime of the process.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-b.out:
			b.mu.RLock()
			subs := b.subs
			b.mu.RUnlock()
			for _, fn := range subs {
				fn(n)
			}
		}
	}
}
