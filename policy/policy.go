// Package policy decides whether an authenticated subject may act on a resource.
package policy

import "github.com/google/uuid"

// Subject is the authenticated caller.
type Subject struct {
	UserID uuid.UUID
	Role   string
}

// Resource is what the caller wants to touch. ID identifies the resource itself and
// OwnerID the user it belongs to; either may be uuid.Nil when it does not apply.
type Resource struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

type Policy interface {
	Allow(subject Subject, resource Resource) bool
}

// Func adapts a plain predicate to Policy.
type Func func(Subject, Resource) bool

func (f Func) Allow(s Subject, r Resource) bool { return f(s, r) }

// IsSelf allows a user to act on their own user record.
type IsSelf struct{}

func (IsSelf) Allow(s Subject, r Resource) bool {
	return s.UserID != uuid.Nil && s.UserID == r.ID
}

// IsResourceOwner allows the user who owns the resource.
type IsResourceOwner struct{}

func (IsResourceOwner) Allow(s Subject, r Resource) bool {
	return s.UserID != uuid.Nil && s.UserID == r.OwnerID
}

// HasRole allows subjects holding any of the listed roles.
type HasRole struct {
	Roles []string
}

func Role(roles ...string) HasRole {
	return HasRole{Roles: roles}
}

func (p HasRole) Allow(s Subject, _ Resource) bool {
	for _, role := range p.Roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

type anyOf []Policy

// AnyOf allows when at least one policy allows.
func AnyOf(policies ...Policy) Policy { return anyOf(policies) }

func (ps anyOf) Allow(s Subject, r Resource) bool {
	for _, p := range ps {
		if p.Allow(s, r) {
			return true
		}
	}
	return false
}

type allOf []Policy

// AllOf allows only when every policy allows. An empty AllOf denies.
func AllOf(policies ...Policy) Policy { return allOf(policies) }

func (ps allOf) Allow(s Subject, r Resource) bool {
	if len(ps) == 0 {
		return false
	}
	for _, p := range ps {
		if !p.Allow(s, r) {
			return false
		}
	}
	return true
}
