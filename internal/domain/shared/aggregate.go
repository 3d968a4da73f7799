package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	DomainEntity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// EntityAggregateRoot extends BaseAggregateRoot with entity (tenant) scoping.
// EntityID identifies the owning company; it is the unit of data isolation.
type EntityAggregateRoot struct {
	BaseAggregateRoot
	EntityID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewEntityAggregateRoot creates a new entity-scoped aggregate root
func NewEntityAggregateRoot(entityID uuid.UUID) EntityAggregateRoot {
	return EntityAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		EntityID:          entityID,
	}
}

// NewEntityAggregateRootWithCreator creates a new entity-scoped aggregate root with creator info
func NewEntityAggregateRootWithCreator(entityID, createdBy uuid.UUID) EntityAggregateRoot {
	return EntityAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		EntityID:          entityID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (t *EntityAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// GetEntityID returns the owning entity ID
func (t *EntityAggregateRoot) GetEntityID() uuid.UUID {
	return t.EntityID
}
