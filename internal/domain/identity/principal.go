package identity

import (
	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation. It is produced
// once per request by the auth layer and passed explicitly to every
// operation that touches entity-scoped data; core code never reads it
// from ambient request state. Immutable for the duration of a request.
type Principal struct {
	ID       uuid.UUID
	EntityID uuid.UUID
	// AccountID is the organisation grouping the principal's entities;
	// nil when the entity is unaffiliated.
	AccountID *uuid.UUID
	Role      Role
	Username  string
}

// NewPrincipal creates a principal for the given user context
func NewPrincipal(id, entityID uuid.UUID, accountID *uuid.UUID, role Role, username string) *Principal {
	return &Principal{
		ID:        id,
		EntityID:  entityID,
		AccountID: accountID,
		Role:      role,
		Username:  username,
	}
}
