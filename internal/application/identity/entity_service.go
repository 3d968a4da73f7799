package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// EntityService handles entity management. Creating entities is a
// platform-level operation; reading an entity follows the normal access
// rules.
type EntityService struct {
	entityRepo  identity.EntityRepository
	accountRepo identity.AccountRepository
}

// NewEntityService creates a new EntityService
func NewEntityService(entityRepo identity.EntityRepository, accountRepo identity.AccountRepository) *EntityService {
	return &EntityService{entityRepo: entityRepo, accountRepo: accountRepo}
}

// Create creates a new entity. Only PLATFORM_ADMIN may do this.
func (s *EntityService) Create(ctx context.Context, p *identity.Principal, req CreateEntityRequest) (*EntityResponse, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if p.Role != identity.RolePlatformAdmin {
		return nil, shared.NewForbiddenError(authz.ReasonInsufficientRole, "Only platform administrators can create entities")
	}

	entity, err := identity.NewEntity(req.Name)
	if err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(ctx, *req.AccountID); err != nil {
			return nil, err
		}
		if err := entity.AssignToAccount(*req.AccountID); err != nil {
			return nil, err
		}
	}

	if err := s.entityRepo.Save(ctx, entity); err != nil {
		return nil, err
	}

	return ToEntityResponse(entity), nil
}

// Get retrieves an entity by ID
func (s *EntityService) Get(ctx context.Context, p *identity.Principal, entityID uuid.UUID) (*EntityResponse, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	res := authz.Resource{EntityID: entity.ID, AccountID: entity.AccountID}
	if d := authz.Authorize(p, res, authz.ActionRead); !d.Allowed {
		return nil, d.Err()
	}

	return ToEntityResponse(entity), nil
}

// ListForAccount lists entities under the caller's account
func (s *EntityService) ListForAccount(ctx context.Context, p *identity.Principal, accountID uuid.UUID) ([]EntityResponse, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if p.Role != identity.RolePlatformAdmin {
		if p.AccountID == nil || *p.AccountID != accountID {
			return nil, shared.NewForbiddenError(authz.ReasonWrongTenant, "Access to this account is forbidden")
		}
	}

	entities, err := s.entityRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]EntityResponse, 0, len(entities))
	for i := range entities {
		responses = append(responses, *ToEntityResponse(&entities[i]))
	}
	return responses, nil
}

// CreateAccount provisions a new account. Only PLATFORM_ADMIN may do this.
func (s *EntityService) CreateAccount(ctx context.Context, p *identity.Principal, req CreateAccountRequest) (*AccountResponse, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if p.Role != identity.RolePlatformAdmin {
		return nil, shared.NewForbiddenError(authz.ReasonInsufficientRole, "Only platform administrators can create accounts")
	}

	account, err := identity.NewAccount(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return ToAccountResponse(account), nil
}

// GetAccount retrieves an account. Visible to platform admins and to
// principals belonging to the account.
func (s *EntityService) GetAccount(ctx context.Context, p *identity.Principal, accountID uuid.UUID) (*AccountResponse, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if p.Role != identity.RolePlatformAdmin {
		if p.AccountID == nil || *p.AccountID != accountID {
			return nil, shared.NewForbiddenError(authz.ReasonWrongTenant, "Access to this account is forbidden")
		}
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(account), nil
}
