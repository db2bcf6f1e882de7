package services

import "sync"

// SessionEventKind identifies what happened to a session.
type SessionEventKind string

const (
	SessionRegistered SessionEventKind = "registered"
	SessionLoggedIn   SessionEventKind = "logged_in"
	SessionLoggedOut  SessionEventKind = "logged_out"
	SessionDeleted    SessionEventKind = "deleted"
)

// SessionEvent is broadcast to subscribers whenever the authentication
// state of an account changes.
type SessionEvent struct {
	Kind      SessionEventKind
	AccountID string
	Username  string
}

// SessionBroker fans out session-change notifications to subscribers with
// an explicit subscribe/unsubscribe lifecycle. It replaces ambient global
// auth state: components that care about the current session subscribe and
// receive events, everything else stays unaware.
type SessionBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan SessionEvent
}

// NewSessionBroker creates an empty broker.
func NewSessionBroker() *SessionBroker {
	return &SessionBroker{
		subs: make(map[int]chan SessionEvent),
	}
}

// Subscribe registers a listener and returns its event channel together
// with an unsubscribe function. The channel is closed on unsubscribe.
func (b *SessionBroker) Subscribe() (<-chan SessionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan SessionEvent, 8)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every subscriber. Slow subscribers whose
// buffer is full miss the event rather than blocking the publisher.
func (b *SessionBroker) Publish(event SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
