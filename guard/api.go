package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cccteam/coursegate/access"
	"github.com/cccteam/coursegate/policy"
	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

// PathParam is the query parameter naming the guarded view to evaluate.
const PathParam = "path"

// OutcomeResponse is the client representation of an access evaluation.
type OutcomeResponse struct {
	Decision access.Decision `json:"decision"`
	State    access.State    `json:"state"`
	Role     string          `json:"role,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Notice   string          `json:"notice,omitempty"`
}

func (g *Guard) response(o access.Outcome, path string, notice bool) OutcomeResponse {
	res := OutcomeResponse{
		Decision: o.Decision,
		State:    o.State,
		Role:     o.Role.String(),
		Redirect: g.redirect(o, path),
	}
	if notice {
		res.Notice = access.NoticeMessage(o.Required)
	}

	return res
}

// route returns the policy route matching path. Route patterns are matched the way the
// router registered by Mount matches them.
func (g *Guard) route(path string) (policy.Route, bool) {
	rctx := chi.NewRouteContext()
	if !g.matcher.Match(rctx, http.MethodGet, path) {
		return policy.Route{}, false
	}

	return g.policy.Route(rctx.RoutePattern())
}

func (g *Guard) lookup(path string) (policy.Route, error) {
	if path == "" {
		return policy.Route{}, httpio.NewBadRequestMessage("path is required")
	}

	route, ok := g.route(path)
	if !ok {
		return policy.Route{}, httpio.NewNotFoundMessagef("no guarded view at %s", path)
	}

	return route, nil
}

// Outcome decides a single navigation of s to the view at path.
func (g *Guard) Outcome(ctx context.Context, s access.Session, path string) (OutcomeResponse, error) {
	route, err := g.lookup(path)
	if err != nil {
		return OutcomeResponse{}, err
	}

	nav := access.NewNavigation(route.Allowed, LogNotifier())
	o := nav.Evaluate(ctx, s)

	return g.response(o, path, nav.Notified()), nil
}

// Evaluate is the handler deciding a single navigation to the view named by the path
// query parameter. Guarding in the client follows the returned OutcomeResponse.
func (g *Guard) Evaluate() http.HandlerFunc {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Guard.Evaluate()")
		defer span.End()

		res, err := g.Outcome(ctx, g.resolver.Resolve(r), r.URL.Query().Get(PathParam))
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(res)
	})
}

// Watch is the handler streaming the outcomes of a navigation to the view named by the
// path query parameter as server-sent events. An event is sent for the initial outcome
// and for every change caused by load completion, sign-in or sign-out.
func (g *Guard) Watch() http.HandlerFunc {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Guard.Watch()")
		defer span.End()

		path := r.URL.Query().Get(PathParam)
		route, err := g.lookup(path)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}
		if g.hub == nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewNotFoundMessage("access watch is not enabled"))
		}

		rc := http.NewResponseController(w)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			return errors.Wrap(err, "http.ResponseController.Flush()")
		}

		nav := access.NewNavigation(route.Allowed, LogNotifier())
		updates := g.hub.Subscribe(ctx, g.resolver.Resolve(r))

		var notified bool
		for o := range access.Watch(ctx, nav, updates) {
			notice := o.State == access.Unauthorized && !notified
			if notice {
				notified = true
			}

			if err := writeEvent(w, g.response(o, path, notice)); err != nil {
				logger.Ctx(ctx).Infof("access watch for %s ended: %v", path, err)

				return nil
			}
			if err := rc.Flush(); err != nil {
				return errors.Wrap(err, "http.ResponseController.Flush()")
			}
		}

		return nil
	})
}

func writeEvent(w http.ResponseWriter, res OutcomeResponse) error {
	b, err := json.Marshal(res)
	if err != nil {
		return errors.Wrap(err, "json.Marshal()")
	}

	if _, err := fmt.Fprintf(w, "event: access\ndata: %s\n\n", b); err != nil {
		return errors.Wrap(err, "fmt.Fprintf()")
	}

	return nil
}
