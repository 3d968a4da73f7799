package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	shared.EntityRepository[Client]
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	shared.EntityRepository[Invoice]
	FindByClient(ctx context.Context, entityID, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)
}

// InvoiceCodeRepository defines the interface for the invoice number
// counters. There is at most one counter per (entity, client) pair.
type InvoiceCodeRepository interface {
	// FindByClient returns the counter for the client, or a NOT_FOUND
	// domain error when none has been created yet.
	FindByClient(ctx context.Context, entityID, clientID uuid.UUID) (*InvoiceCode, error)

	// Create inserts a new counter. Returns an ALREADY_EXISTS domain
	// error when a counter for the pair was inserted concurrently.
	Create(ctx context.Context, code *InvoiceCode) error

	// IncrementAndFetch atomically advances the counter by one and
	// returns the new value. The increment and the read happen in a
	// single statement so concurrent allocators can never observe the
	// same value.
	IncrementAndFetch(ctx context.Context, id uuid.UUID) (int64, error)
}
