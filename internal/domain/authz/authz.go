// Package authz holds the pure access rules. Every function in this
// package decides from its arguments alone: no repository lookups, no
// clock, no ambient request state. Callers resolve whatever the rules
// need (the principal, the resource's entity and account) before asking.
package authz

import (
	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// Action is what the caller wants to do with a resource
type Action string

const (
	// ActionRead covers reads and side-effect-free queries
	ActionRead Action = "READ"
	// ActionWrite covers creation and mutation of business data
	ActionWrite Action = "WRITE"
	// ActionAdmin covers user management and role assignment
	ActionAdmin Action = "ADMIN"
)

// Deny reasons carried on Decision and FORBIDDEN errors
const (
	ReasonUnauthenticated  = "UNAUTHENTICATED"
	ReasonWrongTenant      = "WRONG_TENANT"
	ReasonInsufficientRole = "INSUFFICIENT_ROLE"
)

// Resource identifies the target of an access check: the entity owning
// it and, when known, the account that entity belongs to. AccountID is
// nil when the entity is unaffiliated or the caller did not resolve it.
type Resource struct {
	EntityID  uuid.UUID
	AccountID *uuid.UUID
}

// Decision is the outcome of an access check. Reason is set only on
// denial and is one of the Reason* constants.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denying decision into the matching domain error;
// allowing decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return shared.ErrUnauthorized
	default:
		return shared.NewForbiddenError(d.Reason, "Access to this resource is forbidden")
	}
}

// Authorize decides whether the principal may perform the action on the
// resource. A nil principal is an unauthenticated caller and is always
// denied. The rules, in evaluation order:
//
//   - PLATFORM_ADMIN may do anything on any entity.
//   - ACCOUNT_ADMIN may act across entities, but only within its own
//     account: both sides must carry an account ID and they must match.
//   - Everyone else is confined to their own entity.
//   - Within the entity, ADMIN requires an admin role; ENTITY_USER gets
//     READ and WRITE only.
func Authorize(p *identity.Principal, res Resource, action Action) Decision {
	if p == nil {
		return Deny(ReasonUnauthenticated)
	}

	if p.Role == identity.RolePlatformAdmin {
		return Allow()
	}

	if p.EntityID != res.EntityID {
		// Account admins reach sibling entities, but only when the
		// account link is established on both sides.
		if p.Role == identity.RoleAccountAdmin &&
			p.AccountID != nil && res.AccountID != nil &&
			*p.AccountID == *res.AccountID {
			return decideByRole(p.Role, action)
		}
		return Deny(ReasonWrongTenant)
	}

	return decideByRole(p.Role, action)
}

func decideByRole(role identity.Role, action Action) Decision {
	if action == ActionAdmin && !role.IsAdmin() {
		return Deny(ReasonInsufficientRole)
	}
	return Allow()
}

// AuthorizeUpdate is Authorize for mutations of an existing resource.
// ENTITY_USER may create records but not change or delete ones that
// already exist; the admin roles are unaffected.
func AuthorizeUpdate(p *identity.Principal, res Resource) Decision {
	d := Authorize(p, res, ActionWrite)
	if !d.Allowed {
		return d
	}
	if p.Role == identity.RoleEntityUser {
		return Deny(ReasonInsufficientRole)
	}
	return d
}
