package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceLine is a single billable line on an invoice
type InvoiceLine struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount returns quantity * unit price
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Invoice represents an invoice issued by an entity to a client.
// Number stays empty while the invoice is a draft and is stamped from
// the client's counter when the invoice is issued.
type Invoice struct {
	shared.EntityAggregateRoot
	ClientID uuid.UUID
	Number   string
	Status   InvoiceStatus
	Currency string
	Lines    []InvoiceLine
	IssuedAt *time.Time
	DueAt    *time.Time
	Notes    string
}

// NewInvoice creates a new draft invoice for a client
func NewInvoice(entityID, clientID uuid.UUID, currency string) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client ID cannot be empty")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, shared.NewValidationError("currency must be a 3-letter code")
	}

	return &Invoice{
		EntityAggregateRoot: shared.NewEntityAggregateRoot(entityID),
		ClientID:            clientID,
		Status:              InvoiceStatusDraft,
		Currency:            currency,
		Lines:               []InvoiceLine{},
	}, nil
}

// AddLine appends a billable line to a draft invoice
func (i *Invoice) AddLine(description string, quantity, unitPrice decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft invoices")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewValidationError("line description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("unit price cannot be negative")
	}

	i.Lines = append(i.Lines, InvoiceLine{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// RemoveLine removes a line from a draft invoice
func (i *Invoice) RemoveLine(lineID uuid.UUID) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be removed from draft invoices")
	}

	for idx, line := range i.Lines {
		if line.ID == lineID {
			i.Lines = append(i.Lines[:idx], i.Lines[idx+1:]...)
			i.UpdatedAt = time.Now()
			i.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Invoice line not found")
}

// Total returns the sum of all line amounts
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Lines {
		total = total.Add(line.Amount())
	}
	return total
}

// Issue stamps the invoice with its allocated number and marks it issued
func (i *Invoice) Issue(number string, dueAt *time.Time) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued")
	}
	if number == "" {
		return shared.NewValidationError("invoice number cannot be empty")
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot issue an invoice with no lines")
	}

	now := time.Now()
	i.Number = number
	i.Status = InvoiceStatusIssued
	i.IssuedAt = &now
	i.DueAt = dueAt
	i.UpdatedAt = now
	i.IncrementVersion()

	return nil
}

// MarkPaid marks an issued invoice as paid
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be marked paid")
	}

	i.Status = InvoiceStatusPaid
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Cancel cancels a draft or issued invoice. The allocated number, if
// any, is not returned to the pool; sequences only move forward.
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already cancelled")
	}

	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}
