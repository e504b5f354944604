package access

import (
	"context"
	"sync"

	"github.com/cccteam/coursegate/role"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

// Notice is the user visible message emitted when a signed in principal is refused a view.
type Notice struct {
	SubjectID string
	Role      role.Role
	Required  role.Set
	Message   string
}

// NoticeMessage formats the denial message for a CapabilitySet.
func NoticeMessage(allowed role.Set) string {
	return "requires one of: " + allowed.String()
}

// Notifier delivers denial notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notice) error

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notice) error {
	return f(ctx, n)
}

// Navigation is one attempt to enter a guarded view. It may be evaluated many times as
// Session updates arrive; the denial notice is emitted at most once per Navigation.
type Navigation struct {
	allowed  role.Set
	notifier Notifier

	mu       sync.Mutex
	notified bool
}

// NewNavigation starts a navigation to a view guarded by allowed. notifier may be nil.
func NewNavigation(allowed role.Set, notifier Notifier) *Navigation {
	return &Navigation{
		allowed:  allowed,
		notifier: notifier,
	}
}

// Allowed returns the CapabilitySet of the view being entered.
func (n *Navigation) Allowed() role.Set {
	return n.allowed
}

// Notified reports whether the denial notice has been emitted.
func (n *Navigation) Notified() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.notified
}

// Evaluate returns EvaluateAccess(s, allowed). On the first Unauthorized outcome it emits
// the denial notice. A notifier failure is logged and does not change the outcome.
func (n *Navigation) Evaluate(ctx context.Context, s Session) Outcome {
	o := EvaluateAccess(s, n.allowed)
	if o.State != Unauthorized {
		return o
	}

	n.mu.Lock()
	first := !n.notified
	n.notified = true
	n.mu.Unlock()

	if first && n.notifier != nil {
		notice := Notice{
			SubjectID: s.SubjectID,
			Role:      o.Role,
			Required:  n.allowed,
			Message:   NoticeMessage(n.allowed),
		}
		if err := n.notifier.Notify(ctx, notice); err != nil {
			logger.Ctx(ctx).Error(errors.Wrap(err, "access.Notifier.Notify()"))
		}
	}

	return o
}

// Watch re-evaluates nav each time a Session update arrives and emits every Outcome that
// differs from the previous one. It never polls and has no timeout: if no update arrives
// the navigation stays where it is. The returned channel closes when ctx is done or
// updates is closed.
func Watch(ctx context.Context, nav *Navigation, updates <-chan Session) <-chan Outcome {
	out := make(chan Outcome)

	go func() {
		defer close(out)

		var last *Outcome
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-updates:
				if !ok {
					return
				}

				o := nav.Evaluate(ctx, s)
				if last != nil && last.Equal(o) {
					continue
				}
				last = &o

				select {
				case out <- o:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
