package billing

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// referenceCodePattern is the shape a reference code must have before it
// can seed invoice numbers: exactly three uppercase ASCII letters.
var referenceCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Client represents a customer a business entity invoices.
//
// ReferenceCode is stored as entered; it is only validated at the point
// an invoice number is allocated, so legacy or draft clients may carry
// codes that do not (yet) qualify as invoice prefixes.
type Client struct {
	shared.EntityAggregateRoot
	Name          string
	ReferenceCode string
	Email         string
	Address       string
	Status        ClientStatus
}

// NewClient creates a new active client
func NewClient(entityID uuid.UUID, name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("client name cannot exceed 200 characters")
	}

	return &Client{
		EntityAggregateRoot: shared.NewEntityAggregateRoot(entityID),
		Name:                name,
		Status:              ClientStatusActive,
	}, nil
}

// Rename changes the client's name
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("client name cannot be empty")
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetReferenceCode stores the reference code as entered. No shape check
// happens here; InvoicePrefix enforces the prefix rules when numbers are
// actually allocated.
func (c *Client) SetReferenceCode(code string) {
	c.ReferenceCode = code
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetContact updates the client's contact details
func (c *Client) SetContact(email, address string) error {
	if len(email) > 200 {
		return shared.NewValidationError("email cannot exceed 200 characters")
	}
	if len(address) > 500 {
		return shared.NewValidationError("address cannot exceed 500 characters")
	}

	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Archive archives the client
func (c *Client) Archive() error {
	if c.Status == ClientStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Client is already archived")
	}

	c.Status = ClientStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// InvoicePrefix returns the client's reference code validated for use as
// an invoice number prefix. The stored code is trimmed, then must be
// exactly three uppercase ASCII letters; anything else is a validation
// error echoing the offending code. An empty code is valid and means the
// client has no invoice numbering configured.
func (c *Client) InvoicePrefix() (string, error) {
	code := strings.TrimSpace(c.ReferenceCode)
	if code == "" {
		return "", nil
	}
	if !referenceCodePattern.MatchString(code) {
		return "", shared.NewValidationError("reference code %q must be exactly 3 uppercase letters", code)
	}
	return code, nil
}

// HasInvoicePrefix reports whether the client has any reference code set,
// valid or not.
func (c *Client) HasInvoicePrefix() bool {
	return strings.TrimSpace(c.ReferenceCode) != ""
}
