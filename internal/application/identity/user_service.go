package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user management. All operations here require the
// ADMIN action on the target entity.
type UserService struct {
	userRepo   identity.UserRepository
	entityRepo identity.EntityRepository
	logger     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, entityRepo identity.EntityRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		entityRepo: entityRepo,
		logger:     logger,
	}
}

// Create creates a new user in the target entity
func (s *UserService) Create(ctx context.Context, p *identity.Principal, entityID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionAdmin); !d.Allowed {
		return nil, d.Err()
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	user, err := identity.NewUser(entityID, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("entity_id", entityID.String()),
		zap.String("role", role.String()))

	return ToUserResponse(user), nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, p *identity.Principal, entityID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForEntity(ctx, entityID, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionAdmin); !d.Allowed {
		return nil, d.Err()
	}

	return ToUserResponse(user), nil
}

// List retrieves users in an entity with pagination
func (s *UserService) List(ctx context.Context, p *identity.Principal, entityID uuid.UUID, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionAdmin); !d.Allowed {
		return nil, d.Err()
	}

	users, err := s.userRepo.FindAllForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.CountForEntity(ctx, entityID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *ToUserResponse(&users[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AssignRole changes a user's role
func (s *UserService) AssignRole(ctx context.Context, p *identity.Principal, entityID, userID uuid.UUID, req AssignRoleRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForEntity(ctx, entityID, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(p, res, authz.ActionAdmin); !d.Allowed {
		return nil, d.Err()
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if err := user.AssignRole(role); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user role changed",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()))

	return ToUserResponse(user), nil
}

// Deactivate deactivates a user
func (s *UserService) Deactivate(ctx context.Context, p *identity.Principal, entityID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForEntity(ctx, entityID, userID)
	if err != nil {
		return err
	}

	res, err := s.resourceFor(ctx, entityID)
	if err != nil {
		return err
	}
	if d := authz.Authorize(p, res, authz.ActionAdmin); !d.Allowed {
		return d.Err()
	}

	if p != nil && p.ID == user.ID {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate your own account")
	}

	if err := user.Deactivate(); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

func (s *UserService) resourceFor(ctx context.Context, entityID uuid.UUID) (authz.Resource, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return authz.Resource{}, err
	}
	return authz.Resource{EntityID: entity.ID, AccountID: entity.AccountID}, nil
}
