package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"go.uber.org/zap"
)

// NumberService allocates sequential invoice numbers per (entity,
// client) pair. Counters are created lazily on first allocation and the
// increment happens atomically in the store, so concurrent allocations
// for the same client never yield duplicates.
type NumberService struct {
	clientRepo billing.ClientRepository
	codeRepo   billing.InvoiceCodeRepository
	entityRepo identity.EntityRepository
	logger     *zap.Logger
}

// NewNumberService creates a new NumberService
func NewNumberService(
	clientRepo billing.ClientRepository,
	codeRepo billing.InvoiceCodeRepository,
	entityRepo identity.EntityRepository,
	logger *zap.Logger,
) *NumberService {
	return &NumberService{
		clientRepo: clientRepo,
		codeRepo:   codeRepo,
		entityRepo: entityRepo,
		logger:     logger,
	}
}

// Allocate issues the next invoice number for the client. The client
// must exist in the target entity and carry a valid reference code. The
// counter row is created on first use with the prefix frozen from the
// client's current code. A failed increment is returned as-is; the
// caller decides whether to retry.
func (s *NumberService) Allocate(ctx context.Context, p *identity.Principal, entityID, clientID uuid.UUID) (*AllocationResponse, error) {
	client, err := s.clientRepo.FindByIDForEntity(ctx, entityID, clientID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionWrite); !d.Allowed {
		return nil, d.Err()
	}

	prefix, err := client.InvoicePrefix()
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return nil, shared.NewValidationError("client %q has no reference code configured", client.Name)
	}

	code, err := s.codeRepo.FindByClient(ctx, entityID, clientID)
	if err != nil {
		if !shared.IsCode(err, shared.CodeNotFound) {
			return nil, err
		}
		code, err = s.createCounter(ctx, entityID, clientID, prefix)
		if err != nil {
			return nil, err
		}
	}

	n, err := s.codeRepo.IncrementAndFetch(ctx, code.ID)
	if err != nil {
		return nil, err
	}

	number := billing.FormatInvoiceNumber(code.Prefix, n)
	s.logger.Info("invoice number allocated",
		zap.String("entity_id", entityID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("number", number))

	return &AllocationResponse{
		ClientID:      clientID,
		InvoiceNumber: number,
		Sequence:      n,
	}, nil
}

// Peek returns the most recently allocated invoice number for the
// client without advancing the counter. The result is nil when the
// client has no reference code configured or when nothing has been
// allocated yet. Peek never creates the counter row.
func (s *NumberService) Peek(ctx context.Context, p *identity.Principal, entityID, clientID uuid.UUID) (*PeekResponse, error) {
	client, err := s.clientRepo.FindByIDForEntity(ctx, entityID, clientID)
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

	resp := &PeekResponse{ClientID: clientID}
	if !client.HasInvoicePrefix() {
		return resp, nil
	}

	code, err := s.codeRepo.FindByClient(ctx, entityID, clientID)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return resp, nil
		}
		return nil, err
	}

	if current := code.Current(); current != "" {
		resp.InvoiceNumber = &current
	}
	return resp, nil
}

// createCounter inserts the counter row, falling back to a re-read when
// a concurrent allocation created it first.
func (s *NumberService) createCounter(ctx context.Context, entityID, clientID uuid.UUID, prefix string) (*billing.InvoiceCode, error) {
	code, err := billing.NewInvoiceCode(entityID, clientID, prefix)
	if err != nil {
		return nil, err
	}

	if err := s.codeRepo.Create(ctx, code); err != nil {
		if shared.IsCode(err, shared.CodeAlreadyExists) {
			return s.codeRepo.FindByClient(ctx, entityID, clientID)
		}
		return nil, err
	}
	return code, nil
}

// resourceFor resolves the access-check resource for an entity,
// including its account link when one exists.
func (s *NumberService) resourceFor(ctx context.Context, entityID uuid.UUID) (authz.Resource, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return authz.Resource{}, err
	}
	return authz.Resource{EntityID: entity.ID, AccountID: entity.AccountID}, nil
}
