// Package role defines the closed set of application roles and the capability sets
// that guarded views are registered with.
package role

import (
	"slices"
	"strings"

	"github.com/go-playground/errors/v5"
)

// Role is the single active role of a signed in principal.
type Role string

const (
	// None is the absence of a role. It is only ever derived for signed out sessions.
	None Role = ""

	// Student can browse, enroll and follow courses.
	Student Role = "student"

	// Instructor can author courses, modules and materials.
	Instructor Role = "instructor"

	// Admin can manage everything.
	Admin Role = "admin"
)

// levels orders roles so that a higher level holds every capability of a lower one.
var levels = map[Role]int{
	Student:    1,
	Instructor: 2,
	Admin:      3,
}

// All returns every valid role, least privileged first.
func All() []Role {
	return []Role{Student, Instructor, Admin}
}

// Valid reports whether r is one of the three assignable roles.
func (r Role) Valid() bool {
	_, ok := levels[r]

	return ok
}

// Includes reports whether r holds every capability of other.
func (r Role) Includes(other Role) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}

	return levels[r] >= levels[other]
}

func (r Role) String() string {
	return string(r)
}

// Parse converts untrusted role metadata into a Role.
//
// Only the exact names "student", "instructor" and "admin" are recognized. Every other
// value, including nil, numbers, objects and differently cased strings, yields Student.
func Parse(metadata any) Role {
	s, ok := metadata.(string)
	if !ok {
		return Student
	}

	if r := Role(s); r.Valid() {
		return r
	}

	return Student
}

// FromName converts a role name used in configuration into a Role.
func FromName(name string) (Role, error) {
	r := Role(strings.TrimSpace(name))
	if !r.Valid() {
		return None, errors.Newf("unknown role %q, expected one of %s", name, strings.Join(names(All()), ", "))
	}

	return r, nil
}

func names(roles []Role) []string {
	n := make([]string, 0, len(roles))
	for _, r := range roles {
		n = append(n, string(r))
	}

	return n
}

// Set is an immutable capability set: the roles permitted on a guarded view.
type Set struct {
	roles []Role
}

// NewSet returns a Set containing the given roles. Invalid roles and duplicates are dropped.
// NewSet() with no arguments is the empty set, which denies everyone.
func NewSet(roles ...Role) Set {
	s := Set{roles: make([]Role, 0, len(roles))}
	for _, r := range roles {
		if r.Valid() && !slices.Contains(s.roles, r) {
			s.roles = append(s.roles, r)
		}
	}

	return s
}

// DefaultSet is the capability set of a view that does not name one: any signed in role.
func DefaultSet() Set {
	return NewSet(All()...)
}

// ParseSet validates role names against the closed set and returns the Set.
// A nil slice yields DefaultSet; a non-nil empty slice yields the empty set.
func ParseSet(roleNames []string) (Set, error) {
	if roleNames == nil {
		return DefaultSet(), nil
	}

	roles := make([]Role, 0, len(roleNames))
	for _, n := range roleNames {
		r, err := FromName(n)
		if err != nil {
			return Set{}, errors.Wrap(err, "role.FromName()")
		}
		roles = append(roles, r)
	}

	return NewSet(roles...), nil
}

// Roles returns the roles listed in the set, in registration order.
func (s Set) Roles() []Role {
	return slices.Clone(s.roles)
}

// Empty reports whether the set denies everyone.
func (s Set) Empty() bool {
	return len(s.roles) == 0
}

// Contains reports whether r is literally listed in the set.
func (s Set) Contains(r Role) bool {
	return slices.Contains(s.roles, r)
}

// Permits reports whether r is in the inheritance closure of the set: r is listed, or r
// includes the capabilities of a listed role.
func (s Set) Permits(r Role) bool {
	for _, allowed := range s.roles {
		if r.Includes(allowed) {
			return true
		}
	}

	return false
}

// String joins the listed roles with " or ", e.g. "instructor or admin".
func (s Set) String() string {
	return strings.Join(names(s.roles), " or ")
}
