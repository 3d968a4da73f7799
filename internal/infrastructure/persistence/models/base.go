package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// EntityAggregateModel provides common persistence fields for entity-scoped
// aggregate roots. It extends AggregateModel with the owning entity ID and
// creator info.
type EntityAggregateModel struct {
	AggregateModel
	EntityID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// ToDomainEntityAggregateRoot converts to domain EntityAggregateRoot
func (m *EntityAggregateModel) ToDomainEntityAggregateRoot() shared.EntityAggregateRoot {
	return shared.EntityAggregateRoot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EntityID:          m.EntityID,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomainEntityAggregateRoot populates from domain EntityAggregateRoot
func (m *EntityAggregateModel) FromDomainEntityAggregateRoot(t shared.EntityAggregateRoot) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.EntityID = t.EntityID
	m.CreatedBy = t.CreatedBy
}
