// Package identity pushes identity provider events (load completion, sign-in, sign-out)
// to everything watching a guarded view.
package identity

import (
	"context"
	"sync"

	"github.com/cccteam/coursegate/access"
)

// Hub holds the load state of the identity integration and fans Session updates out to
// subscribers. Publishers are the session handlers; subscribers are view watchers.
type Hub struct {
	mu     sync.RWMutex
	loaded bool
	nextID uint64
	subs   map[uint64]*subscription
}

type subscription struct {
	session access.Session
	ch      chan access.Session
}

// NewHub returns a Hub in the not loaded state.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]*subscription),
	}
}

// Loaded reports whether the identity integration has finished initializing.
func (h *Hub) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.loaded
}

// MarkLoaded records load completion and pushes it to every subscriber. Calling it more
// than once has no further effect.
func (h *Hub) MarkLoaded() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.loaded {
		return
	}
	h.loaded = true

	for _, s := range h.subs {
		next := s.session
		next.IsLoaded = true
		s.push(next)
	}
}

// SignedIn pushes a signed in Session for subjectID to its subscribers.
func (h *Hub) SignedIn(subjectID string, roleMetadata any) {
	h.publish(subjectID, func(s access.Session) access.Session {
		s.IsSignedIn = true
		s.RoleMetadata = roleMetadata

		return s
	})
}

// SignedOut pushes a signed out Session to the subscribers of subjectID.
func (h *Hub) SignedOut(subjectID string) {
	h.publish(subjectID, func(s access.Session) access.Session {
		s.IsSignedIn = false
		s.RoleMetadata = nil

		return s
	})
}

func (h *Hub) publish(subjectID string, update func(access.Session) access.Session) {
	if subjectID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.subs {
		if s.session.SubjectID != subjectID {
			continue
		}
		s.push(update(s.session))
	}
}

// Subscribe registers a watcher whose current Session is initial and returns the channel
// of updates. The current Session is delivered first. Only the latest undelivered update
// is kept, so a slow reader never blocks publishers. The channel closes when ctx is done.
func (h *Hub) Subscribe(ctx context.Context, initial access.Session) <-chan access.Session {
	h.mu.Lock()
	if h.loaded {
		initial.IsLoaded = true
	}
	id := h.nextID
	h.nextID++
	s := &subscription{ch: make(chan access.Session, 1)}
	s.push(initial)
	h.subs[id] = s
	h.mu.Unlock()

	go func() {
		<-ctx.Done()

		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
		close(s.ch)
	}()

	return s.ch
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// push replaces any undelivered update with sess. Callers hold the Hub write lock.
func (s *subscription) push(sess access.Session) {
	s.session = sess

	select {
	case s.ch <- sess:
		return
	default:
	}

	select {
	case <-s.ch:
	default:
	}

	select {
	case s.ch <- sess:
	default:
	}
}
