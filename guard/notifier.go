package guard

import (
	"context"
	"net/http"

	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

// NoticeStore persists a denial notice until the client displays it.
type NoticeStore interface {
	WriteNoticeCookie(w http.ResponseWriter, message string) error
	ReadNoticeCookie(r *http.Request) (string, bool)
	DeleteNoticeCookie(w http.ResponseWriter)
}

// CookieNotifier returns a Notifier that stores the notice in a flash cookie. It only
// works for notices raised by Require, which has the ResponseWriter at hand.
func CookieNotifier(store NoticeStore) access.Notifier {
	return access.NotifierFunc(func(ctx context.Context, n access.Notice) error {
		w, ok := responseWriterFromCtx(ctx)
		if !ok {
			return errors.New("no response writer in context")
		}

		if err := store.WriteNoticeCookie(w, n.Message); err != nil {
			return errors.Wrap(err, "NoticeStore.WriteNoticeCookie()")
		}

		return nil
	})
}

// LogNotifier returns a Notifier that records the denial in the request log.
func LogNotifier() access.Notifier {
	return access.NotifierFunc(func(ctx context.Context, n access.Notice) error {
		logger.Ctx(ctx).Infof("access denied for %q with role %q: %s", n.SubjectID, n.Role, n.Message)

		return nil
	})
}

// MultiNotifier returns a Notifier that delivers to every notifier in order. Delivery
// continues past a failure and the first error is returned.
func MultiNotifier(notifiers ...access.Notifier) access.Notifier {
	return access.NotifierFunc(func(ctx context.Context, n access.Notice) error {
		var first error
		for _, notifier := range notifiers {
			if err := notifier.Notify(ctx, n); err != nil && first == nil {
				first = err
			}
		}

		return first
	})
}

// Notice is the handler returning and clearing the pending denial notice.
func (g *Guard) Notice(store NoticeStore) http.HandlerFunc {
	type response struct {
		Message string `json:"message,omitempty"`
	}

	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		msg, ok := store.ReadNoticeCookie(r)
		if ok {
			store.DeleteNoticeCookie(w)
		}

		return httpio.NewEncoder(w).Ok(response{Message: msg})
	})
}
