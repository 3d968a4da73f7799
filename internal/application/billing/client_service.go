package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo billing.ClientRepository
	entityRepo identity.EntityRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo billing.ClientRepository, entityRepo identity.EntityRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		entityRepo: entityRepo,
	}
}

// Create creates a new client in the target entity
func (s *ClientService) Create(ctx context.Context, p *identity.Principal, entityID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionWrite); !d.Allowed {
		return nil, d.Err()
	}

	client, err := billing.NewClient(entityID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ReferenceCode != "" {
		client.SetReferenceCode(req.ReferenceCode)
	}
	if req.Email != "" || req.Address != "" {
		if err := client.SetContact(req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// Get retrieves a client by ID
func (s *ClientService) Get(ctx context.Context, p *identity.Principal, entityID, clientID uuid.UUID) (*ClientResponse, error) {
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

	return ToClientResponse(client), nil
}

// List retrieves clients in an entity with pagination
func (s *ClientService) List(ctx context.Context, p *identity.Principal, entityID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionRead); !d.Allowed {
		return nil, d.Err()
	}

	clients, err := s.clientRepo.FindAllForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.CountForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *ToClientResponse(&clients[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update modifies an existing client. Changing the reference code does
// not touch an existing invoice counter; numbers keep the prefix the
// counter was created with.
func (s *ClientService) Update(ctx context.Context, p *identity.Principal, entityID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForEntity(ctx, entityID, clientID)
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

	if req.Name != nil {
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ReferenceCode != nil {
		client.SetReferenceCode(*req.ReferenceCode)
	}
	if req.Email != nil || req.Address != nil {
		email := client.Email
		address := client.Address
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := client.SetContact(email, address); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// Archive archives a client
func (s *ClientService) Archive(ctx context.Context, p *identity.Principal, entityID, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByIDForEntity(ctx, entityID, clientID)
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

	if err := client.Archive(); err != nil {
		return err
	}

	return s.clientRepo.Save(ctx, client)
}

func (s *ClientService) resourceFor(ctx context.Context, entityID uuid.UUID) (authz.Resource, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return authz.Resource{}, err
	}
	return authz.Resource{EntityID: entity.ID, AccountID: entity.AccountID}, nil
}
