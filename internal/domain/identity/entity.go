package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// EntityStatus represents the status of an entity
type EntityStatus string

const (
	EntityStatusActive    EntityStatus = "active"
	EntityStatusSuspended EntityStatus = "suspended"
)

// Entity is a tenant company/business unit: the unit of data isolation.
// Every entity-scoped resource carries its EntityID.
type Entity struct {
	shared.BaseAggregateRoot
	Name string
	// AccountID groups this entity under an organisation; nil for
	// standalone entities.
	AccountID *uuid.UUID
	Status    EntityStatus
}

// NewEntity creates a new active entity
func NewEntity(name string) (*Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("entity name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("entity name cannot exceed 200 characters")
	}

	return &Entity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            EntityStatusActive,
	}, nil
}

// AssignToAccount places the entity under an account
func (e *Entity) AssignToAccount(accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return shared.NewValidationError("account ID cannot be empty")
	}

	e.AccountID = &accountID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Suspend suspends the entity
func (e *Entity) Suspend() error {
	if e.Status == EntityStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Entity is already suspended")
	}

	e.Status = EntityStatusSuspended
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// IsActive returns true if the entity is active
func (e *Entity) IsActive() bool {
	return e.Status == EntityStatusActive
}
