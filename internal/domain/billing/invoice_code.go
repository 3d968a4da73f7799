package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// InvoiceCode is the per-(entity, client) invoice number counter. A row
// is created lazily the first time a number is allocated for a client;
// the prefix is copied from the client's reference code at creation and
// stays fixed for the lifetime of the counter, so later edits to the
// client do not renumber its history.
//
// LastNumber is the last allocated sequence value; 0 means no number has
// been issued yet. The database enforces one counter per (entity,
// client) pair.
type InvoiceCode struct {
	shared.EntityAggregateRoot
	ClientID   uuid.UUID
	Prefix     string
	LastNumber int64
}

// NewInvoiceCode creates a fresh counter for a client with the given prefix
func NewInvoiceCode(entityID, clientID uuid.UUID, prefix string) (*InvoiceCode, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client ID cannot be empty")
	}
	if !referenceCodePattern.MatchString(prefix) {
		return nil, shared.NewValidationError("reference code %q must be exactly 3 uppercase letters", prefix)
	}

	return &InvoiceCode{
		EntityAggregateRoot: shared.NewEntityAggregateRoot(entityID),
		ClientID:            clientID,
		Prefix:              prefix,
		LastNumber:          0,
	}, nil
}

// FormatInvoiceNumber renders a sequence value as a full invoice number:
// the prefix, an underscore, and the value zero-padded to five digits.
// Values beyond 99999 simply render wider; the sequence never wraps.
func FormatInvoiceNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s_%05d", prefix, n)
}

// Current returns the most recently allocated invoice number, or "" when
// nothing has been allocated yet. It never advances the counter.
func (ic *InvoiceCode) Current() string {
	if ic.LastNumber == 0 {
		return ""
	}
	return FormatInvoiceNumber(ic.Prefix, ic.LastNumber)
}
