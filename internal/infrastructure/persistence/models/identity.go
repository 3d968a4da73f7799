package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
)

// AccountModel is the persistence model for the Account aggregate
type AccountModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
}

// EntityModel is the persistence model for the Entity aggregate
type EntityModel struct {
	AggregateModel
	Name      string                `gorm:"type:varchar(200);not null"`
	AccountID *uuid.UUID            `gorm:"type:uuid;index"`
	Status    identity.EntityStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (EntityModel) TableName() string {
	return "entities"
}

// ToDomain converts the persistence model to a domain Entity
func (m *EntityModel) ToDomain() *identity.Entity {
	return &identity.Entity{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		AccountID:         m.AccountID,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Entity
func (m *EntityModel) FromDomain(e *identity.Entity) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Name = e.Name
	m.AccountID = e.AccountID
	m.Status = e.Status
}

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	EntityAggregateModel
	Username     string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string              `gorm:"type:varchar(200);index"`
	PasswordHash string              `gorm:"type:varchar(100);not null"`
	DisplayName  string              `gorm:"type:varchar(200)"`
	Role         identity.Role       `gorm:"type:varchar(30);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		EntityAggregateRoot: m.ToDomainEntityAggregateRoot(),
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		DisplayName:         m.DisplayName,
		Role:                m.Role,
		Status:              m.Status,
		LastLoginAt:         m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainEntityAggregateRoot(u.EntityAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}
