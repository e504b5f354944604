// Package policy loads the route policy: which guarded views exist and which roles may
// enter each of them.
package policy

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cccteam/coursegate/role"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/errors/v5"
	"gopkg.in/yaml.v3"
)

const (
	defaultLanding = "/dashboard"
	defaultSignIn  = "/auth/login"
)

// Route is a guarded view.
type Route struct {
	Path    string
	Allowed role.Set
}

// Policy is the validated route policy.
type Policy struct {
	Landing string
	SignIn  string
	Routes  []Route
}

type file struct {
	Landing string      `yaml:"landing"`
	SignIn  string      `yaml:"signIn"`
	Routes  []routeFile `yaml:"routes"`
}

type routeFile struct {
	Path string `yaml:"path"`
	// AllowedRoles is nil when the key is omitted, which selects the default set.
	AllowedRoles []string `yaml:"allowedRoles"`
}

// Default returns a policy without routes using the default landing and sign-in views.
func Default() *Policy {
	return &Policy{
		Landing: defaultLanding,
		SignIn:  defaultSignIn,
	}
}

// Load reads and validates the policy file at path.
func Load(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "os.Open()")
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "policy file %s", path)
	}

	return p, nil
}

// Parse reads and validates a policy document.
//
// A route without allowedRoles admits every signed in role. A route with an empty
// allowedRoles list admits nobody. Unknown role names are rejected.
func Parse(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty policy document")
		}

		return nil, errors.Wrap(err, "yaml.Decoder.Decode()")
	}

	p := Default()
	p.Routes = make([]Route, 0, len(doc.Routes))
	if doc.Landing != "" {
		p.Landing = doc.Landing
	}
	if doc.SignIn != "" {
		p.SignIn = doc.SignIn
	}
	if !strings.HasPrefix(p.Landing, "/") {
		return nil, errors.Newf("landing %q must start with /", p.Landing)
	}

	mux := chi.NewRouter()
	seen := make(map[string]string, len(doc.Routes))
	for i, rf := range doc.Routes {
		if !strings.HasPrefix(rf.Path, "/") {
			return nil, errors.Newf("routes[%d]: path %q must start with /", i, rf.Path)
		}
		shape := patternShape(rf.Path)
		if prev, ok := seen[shape]; ok {
			if prev == rf.Path {
				return nil, errors.Newf("routes[%d]: duplicate path %q", i, rf.Path)
			}

			return nil, errors.Newf("routes[%d]: duplicate path %q matches the same requests as %q", i, rf.Path, prev)
		}
		seen[shape] = rf.Path

		if err := register(mux, rf.Path); err != nil {
			return nil, errors.Wrapf(err, "routes[%d] %s", i, rf.Path)
		}

		allowed, err := role.ParseSet(rf.AllowedRoles)
		if err != nil {
			return nil, errors.Wrapf(err, "routes[%d] %s", i, rf.Path)
		}

		p.Routes = append(p.Routes, Route{Path: rf.Path, Allowed: allowed})
	}

	return p, nil
}

// register adds pattern to mux, returning the router's rejection of an invalid pattern
// as an error.
func register(mux chi.Router, pattern string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("invalid route pattern: %v", r)
		}
	}()

	mux.Get(pattern, func(http.ResponseWriter, *http.Request) {})

	return nil
}

// patternShape returns pattern with its URL parameter names removed, so that
// /courses/{id} and /courses/{courseID} have the same shape. Parameter regexps are kept.
func patternShape(pattern string) string {
	var b strings.Builder
	depth, named := 0, false
	for _, c := range pattern {
		switch {
		case c == '{':
			depth++
			if depth == 1 {
				named = true
				b.WriteRune(c)

				continue
			}
		case c == '}':
			depth--
			if depth == 0 {
				named = false
			}
		case c == ':' && depth == 1 && named:
			named = false
		}
		if !named {
			b.WriteRune(c)
		}
	}

	return b.String()
}

// ParseBytes is Parse for an in-memory document.
func ParseBytes(b []byte) (*Policy, error) {
	return Parse(bytes.NewReader(b))
}

// Route returns the route registered for path.
func (p *Policy) Route(path string) (Route, bool) {
	for _, r := range p.Routes {
		if r.Path == path {
			return r, true
		}
	}

	return Route{}, false
}
