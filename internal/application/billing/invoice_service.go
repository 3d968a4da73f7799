package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// InvoiceService handles invoice-related business operations. Issuing a
// draft pulls the next number from the NumberService, so numbers are
// only consumed when an invoice actually leaves draft state.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	entityRepo  identity.EntityRepository
	numbers     *NumberService
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, entityRepo identity.EntityRepository, numbers *NumberService) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		entityRepo:  entityRepo,
		numbers:     numbers,
	}
}

// Create creates a new draft invoice
func (s *InvoiceService) Create(ctx context.Context, p *identity.Principal, entityID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionWrite); !d.Allowed {
		return nil, d.Err()
	}

	invoice, err := billing.NewInvoice(entityID, req.ClientID, req.Currency)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	for _, line := range req.Lines {
		if err := invoice.AddLine(line.Description, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

// Get retrieves an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForEntity(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionRead); !d.Allowed {
		return nil, d.Err()
	}

	return ToInvoiceResponse(invoice), nil
}

// List retrieves invoices in an entity with pagination
func (s *InvoiceService) List(ctx context.Context, p *identity.Principal, entityID uuid.UUID, filter shared.Filter) (*shared.Paginated[InvoiceResponse], error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionRead); !d.Allowed {
		return nil, d.Err()
	}

	invoices, err := s.invoiceRepo.FindAllForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.CountForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *ToInvoiceResponse(&invoices[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Issue allocates the next invoice number for the invoice's client and
// moves the draft to issued
func (s *InvoiceService) Issue(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForEntity(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.AuthorizeUpdate(p, res); !d.Allowed {
		return nil, d.Err()
	}

	allocation, err := s.numbers.Allocate(ctx, p, entityID, invoice.ClientID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Issue(allocation.InvoiceNumber, req.DueAt); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

// MarkPaid marks an issued invoice as paid
func (s *InvoiceService) MarkPaid(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, p, entityID, invoiceID, (*billing.Invoice).MarkPaid)
}

// Cancel cancels a draft or issued invoice
func (s *InvoiceService) Cancel(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, p, entityID, invoiceID, (*billing.Invoice).Cancel)
}

// Delete removes an invoice. Paid invoices are immutable records and
// cannot be deleted. Any number the invoice consumed stays consumed;
// the client's counter is never decremented.
func (s *InvoiceService) Delete(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForEntity(ctx, entityID, invoiceID)
	if err != nil {
		return err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return err
	}
	if d := authz.AuthorizeUpdate(p, res); !d.Allowed {
		return d.Err()
	}

	if invoice.Status == billing.InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be deleted")
	}

	return s.invoiceRepo.Delete(ctx, invoice.ID)
}

func (s *InvoiceService) transition(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID, fn func(*billing.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForEntity(ctx, entityID, invoiceID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.AuthorizeUpdate(p, res); !d.Allowed {
		return nil, d.Err()
	}

	if err := fn(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return ToInvoiceResponse(invoice), nil
}

func (s *InvoiceService) resourceFor(ctx context.Context, entityID uuid.UUID) (authz.Resource, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return authz.Resource{}, err
	}
	return authz.Resource{EntityID: entity.ID, AccountID: entity.AccountID}, nil
}
