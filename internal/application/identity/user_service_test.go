package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/authz"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) FindByIDForEntity(ctx context.Context, entityID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, entityID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindAllForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, entityID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *mockUserRepo) CountForEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, entityID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type mockEntityRepo struct {
	mock.Mock
}

func (m *mockEntityRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Entity), args.Error(1)
}

func (m *mockEntityRepo) Save(ctx context.Context, entity *identity.Entity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockEntityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEntityRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Entity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Entity), args.Error(1)
}

func (m *mockEntityRepo) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]identity.Entity, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Entity), args.Error(1)
}

type userServiceFixture struct {
	svc        *UserService
	userRepo   *mockUserRepo
	entityRepo *mockEntityRepo
	entityID   uuid.UUID
	admin      *identity.Principal
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	userRepo := new(mockUserRepo)
	entityRepo := new(mockEntityRepo)

	entity, err := identity.NewEntity("Test Entity")
	require.NoError(t, err)

	entityRepo.On("FindByID", mock.Anything, entity.ID).Return(entity, nil).Maybe()

	return &userServiceFixture{
		svc:        NewUserService(userRepo, entityRepo, zap.NewNop()),
		userRepo:   userRepo,
		entityRepo: entityRepo,
		entityID:   entity.ID,
		admin:      identity.NewPrincipal(uuid.New(), entity.ID, nil, identity.RoleEntityAdmin, "admin"),
	}
}

func (f *userServiceFixture) newUser(t *testing.T, username string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(f.entityID, username, "s3cret-pass", role)
	require.NoError(t, err)
	f.userRepo.On("FindByIDForEntity", mock.Anything, f.entityID, user.ID).Return(user, nil)
	return user
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	req := CreateUserRequest{
		Username: "jdoe",
		Password: "s3cret-pass",
		Role:     "ENTITY_USER",
	}

	t.Run("entity admin creates a user", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)
		f.userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := f.svc.Create(ctx, f.admin, f.entityID, req)
		require.NoError(t, err)
		assert.Equal(t, "jdoe", resp.Username)
		assert.Equal(t, f.entityID, resp.EntityID)
		assert.Equal(t, "ENTITY_USER", resp.Role)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newUserServiceFixture(t)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		_, err := f.svc.Create(ctx, clerk, f.entityID, req)
		require.True(t, shared.IsCode(err, shared.CodeForbidden))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, authz.ReasonInsufficientRole, derr.Reason)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admin of another entity is denied", func(t *testing.T) {
		f := newUserServiceFixture(t)
		outsider := identity.NewPrincipal(uuid.New(), uuid.New(), nil, identity.RoleEntityAdmin, "outsider")

		_, err := f.svc.Create(ctx, outsider, f.entityID, req)
		require.True(t, shared.IsCode(err, shared.CodeForbidden))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, authz.ReasonWrongTenant, derr.Reason)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(true, nil)

		_, err := f.svc.Create(ctx, f.admin, f.entityID, req)
		assert.True(t, shared.IsCode(err, shared.CodeAlreadyExists))
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newUserServiceFixture(t)

		bad := req
		bad.Role = "SUPERUSER"

		_, err := f.svc.Create(ctx, f.admin, f.entityID, bad)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		f := newUserServiceFixture(t)

		f.userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)

		bad := req
		bad.Password = "short"

		_, err := f.svc.Create(ctx, f.admin, f.entityID, bad)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("platform admin can create anywhere", func(t *testing.T) {
		f := newUserServiceFixture(t)
		platform := identity.NewPrincipal(uuid.New(), uuid.New(), nil, identity.RolePlatformAdmin, "root")

		f.userRepo.On("ExistsByUsername", mock.Anything, "jdoe").Return(false, nil)
		f.userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		_, err := f.svc.Create(ctx, platform, f.entityID, req)
		assert.NoError(t, err)
	})
}

func TestUserServiceAssignRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes a user to admin", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)

		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		resp, err := f.svc.AssignRole(ctx, f.admin, f.entityID, user.ID, AssignRoleRequest{Role: "ENTITY_ADMIN"})
		require.NoError(t, err)
		assert.Equal(t, "ENTITY_ADMIN", resp.Role)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("regular user cannot change roles", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		_, err := f.svc.AssignRole(ctx, clerk, f.entityID, user.ID, AssignRoleRequest{Role: "ENTITY_ADMIN"})
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)

		_, err := f.svc.AssignRole(ctx, f.admin, f.entityID, user.ID, AssignRoleRequest{Role: "CEO"})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newUserServiceFixture(t)
		userID := uuid.New()
		f.userRepo.On("FindByIDForEntity", mock.Anything, f.entityID, userID).
			Return(nil, shared.ErrNotFound)

		_, err := f.svc.AssignRole(ctx, f.admin, f.entityID, userID, AssignRoleRequest{Role: "ENTITY_ADMIN"})
		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})
}

func TestUserServiceDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deactivates a user", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)

		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		require.NoError(t, f.svc.Deactivate(ctx, f.admin, f.entityID, user.ID))
		assert.Equal(t, identity.UserStatusDeactivated, user.Status)
	})

	t.Run("cannot deactivate yourself", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "selfadmin", identity.RoleEntityAdmin)
		self := identity.NewPrincipal(user.ID, f.entityID, nil, identity.RoleEntityAdmin, "selfadmin")

		err := f.svc.Deactivate(ctx, self, f.entityID, user.ID)
		require.True(t, shared.IsCode(err, shared.CodeInvalidState))
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		err := f.svc.Deactivate(ctx, clerk, f.entityID, user.ID)
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
	})

	t.Run("already deactivated", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := f.newUser(t, "jdoe", identity.RoleEntityUser)
		require.NoError(t, user.Deactivate())

		err := f.svc.Deactivate(ctx, f.admin, f.entityID, user.ID)
		assert.Error(t, err)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns paginated users", func(t *testing.T) {
		f := newUserServiceFixture(t)
		a, err := identity.NewUser(f.entityID, "alice", "s3cret-pass", identity.RoleEntityAdmin)
		require.NoError(t, err)
		b, err := identity.NewUser(f.entityID, "bob", "s3cret-pass", identity.RoleEntityUser)
		require.NoError(t, err)

		filter := shared.DefaultFilter()
		f.userRepo.On("FindAllForEntity", mock.Anything, f.entityID, filter).
			Return([]identity.User{*a, *b}, nil)
		f.userRepo.On("CountForEntity", mock.Anything, f.entityID, filter).
			Return(int64(2), nil)

		result, err := f.svc.List(ctx, f.admin, f.entityID, filter)
		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newUserServiceFixture(t)
		clerk := identity.NewPrincipal(uuid.New(), f.entityID, nil, identity.RoleEntityUser, "clerk")

		_, err := f.svc.List(ctx, clerk, f.entityID, shared.DefaultFilter())
		assert.True(t, shared.IsCode(err, shared.CodeForbidden))
		f.userRepo.AssertNotCalled(t, "FindAllForEntity", mock.Anything, mock.Anything, mock.Anything)
	})
}
