package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client aggregate
type ClientModel struct {
	EntityAggregateModel
	Name          string               `gorm:"type:varchar(200);not null"`
	ReferenceCode string               `gorm:"type:varchar(50)"`
	Email         string               `gorm:"type:varchar(200)"`
	Address       string               `gorm:"type:text"`
	Status        billing.ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *billing.Client {
	return &billing.Client{
		EntityAggregateRoot: m.ToDomainEntityAggregateRoot(),
		Name:                m.Name,
		ReferenceCode:       m.ReferenceCode,
		Email:               m.Email,
		Address:             m.Address,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Client
func (m *ClientModel) FromDomain(c *billing.Client) {
	m.FromDomainEntityAggregateRoot(c.EntityAggregateRoot)
	m.Name = c.Name
	m.ReferenceCode = c.ReferenceCode
	m.Email = c.Email
	m.Address = c.Address
	m.Status = c.Status
}

// InvoiceCodeModel is the persistence model for the invoice number
// counter. The compound unique index guarantees one counter per
// (entity, client) pair, which is what makes lazy creation safe under
// concurrency.
type InvoiceCodeModel struct {
	EntityAggregateModel
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_code_entity_client,priority:2"`
	Prefix     string    `gorm:"type:varchar(3);not null"`
	LastNumber int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceCodeModel) TableName() string {
	return "invoice_codes"
}

// ToDomain converts the persistence model to a domain InvoiceCode
func (m *InvoiceCodeModel) ToDomain() *billing.InvoiceCode {
	return &billing.InvoiceCode{
		EntityAggregateRoot: m.ToDomainEntityAggregateRoot(),
		ClientID:            m.ClientID,
		Prefix:              m.Prefix,
		LastNumber:          m.LastNumber,
	}
}

// FromDomain populates the persistence model from a domain InvoiceCode
func (m *InvoiceCodeModel) FromDomain(c *billing.InvoiceCode) {
	m.FromDomainEntityAggregateRoot(c.EntityAggregateRoot)
	m.ClientID = c.ClientID
	m.Prefix = c.Prefix
	m.LastNumber = c.LastNumber
}

// InvoiceModel is the persistence model for the Invoice aggregate
type InvoiceModel struct {
	EntityAggregateModel
	ClientID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Number   string                `gorm:"type:varchar(50);index"`
	Status   billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Currency string                `gorm:"type:varchar(3);not null"`
	IssuedAt *time.Time
	DueAt    *time.Time
	Notes    string             `gorm:"type:text"`
	Lines    []InvoiceLineModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for a single invoice line
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	lines := make([]billing.InvoiceLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, billing.InvoiceLine{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	return &billing.Invoice{
		EntityAggregateRoot: m.ToDomainEntityAggregateRoot(),
		ClientID:            m.ClientID,
		Number:              m.Number,
		Status:              m.Status,
		Currency:            m.Currency,
		Lines:               lines,
		IssuedAt:            m.IssuedAt,
		DueAt:               m.DueAt,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainEntityAggregateRoot(inv.EntityAggregateRoot)
	m.ClientID = inv.ClientID
	m.Number = inv.Number
	m.Status = inv.Status
	m.Currency = inv.Currency
	m.IssuedAt = inv.IssuedAt
	m.DueAt = inv.DueAt
	m.Notes = inv.Notes

	m.Lines = make([]InvoiceLineModel, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		m.Lines = append(m.Lines, InvoiceLineModel{
			ID:          l.ID,
			InvoiceID:   inv.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
}
