package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the input for creating a client
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	ReferenceCode string `json:"reference_code"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// UpdateClientRequest is the input for updating a client
type UpdateClientRequest struct {
	Name          *string `json:"name"`
	ReferenceCode *string `json:"reference_code"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

// ClientResponse is the API view of a client
type ClientResponse struct {
	ID            uuid.UUID `json:"id"`
	EntityID      uuid.UUID `json:"entity_id"`
	Name          string    `json:"name"`
	ReferenceCode string    `json:"reference_code"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToClientResponse converts a client to its API view
func ToClientResponse(c *billing.Client) *ClientResponse {
	return &ClientResponse{
		ID:            c.ID,
		EntityID:      c.EntityID,
		Name:          c.Name,
		ReferenceCode: c.ReferenceCode,
		Email:         c.Email,
		Address:       c.Address,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// AllocationResponse is the result of allocating an invoice number
type AllocationResponse struct {
	ClientID      uuid.UUID `json:"client_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Sequence      int64     `json:"sequence"`
}

// PeekResponse is the result of peeking at the last allocated number.
// InvoiceNumber is null when the client has no reference code configured
// or nothing has been allocated yet.
type PeekResponse struct {
	ClientID      uuid.UUID `json:"client_id"`
	InvoiceNumber *string   `json:"invoice_number"`
}

// InvoiceLineRequest is a single line on an invoice create request
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest is the input for creating a draft invoice
type CreateInvoiceRequest struct {
	ClientID uuid.UUID            `json:"client_id" binding:"required"`
	Currency string               `json:"currency" binding:"required"`
	Notes    string               `json:"notes"`
	Lines    []InvoiceLineRequest `json:"lines"`
}

// IssueInvoiceRequest is the input for issuing a draft invoice
type IssueInvoiceRequest struct {
	DueAt *time.Time `json:"due_at"`
}

// InvoiceLineResponse is the API view of an invoice line
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the API view of an invoice
type InvoiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	EntityID  uuid.UUID             `json:"entity_id"`
	ClientID  uuid.UUID             `json:"client_id"`
	Number    string                `json:"number,omitempty"`
	Status    string                `json:"status"`
	Currency  string                `json:"currency"`
	Lines     []InvoiceLineResponse `json:"lines"`
	Total     decimal.Decimal       `json:"total"`
	IssuedAt  *time.Time            `json:"issued_at,omitempty"`
	DueAt     *time.Time            `json:"due_at,omitempty"`
	Notes     string                `json:"notes,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice to its API view
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount(),
		})
	}

	return &InvoiceResponse{
		ID:        inv.ID,
		EntityID:  inv.EntityID,
		ClientID:  inv.ClientID,
		Number:    inv.Number,
		Status:    string(inv.Status),
		Currency:  inv.Currency,
		Lines:     lines,
		Total:     inv.Total(),
		IssuedAt:  inv.IssuedAt,
		DueAt:     inv.DueAt,
		Notes:     inv.Notes,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
