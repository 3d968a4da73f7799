package identity

import (
	"context"
	"testing"
	"time"

	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/auth"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authServiceFixture struct {
	svc        *AuthService
	userRepo   *mockUserRepo
	entityRepo *mockEntityRepo
	blacklist  auth.TokenBlacklist
	jwtService *auth.JWTService
	entity     *identity.Entity
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	userRepo := new(mockUserRepo)
	entityRepo := new(mockEntityRepo)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "office-mgmt-test",
		MaxRefreshCount:        10,
	})

	entity, err := identity.NewEntity("Test Entity")
	require.NoError(t, err)
	entityRepo.On("FindByID", mock.Anything, entity.ID).Return(entity, nil).Maybe()

	return &authServiceFixture{
		svc:        NewAuthService(userRepo, entityRepo, jwtService, blacklist, zap.NewNop()),
		userRepo:   userRepo,
		entityRepo: entityRepo,
		blacklist:  blacklist,
		jwtService: jwtService,
		entity:     entity,
	}
}

func (f *authServiceFixture) newUser(t *testing.T, username, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(f.entity.ID, username, password, identity.RoleEntityUser)
	require.NoError(t, err)
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return tokens", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := f.newUser(t, "jdoe", "s3cret-pass")

		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "jdoe", result.User.Username)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.NotNil(t, user.LastLoginAt)

		// The access token must be usable straight away.
		claims, err := f.jwtService.ValidateAccessToken(result.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := f.newUser(t, "jdoe", "s3cret-pass")

		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "wrong-pass1"})
		assert.True(t, shared.IsCode(err, "INVALID_CREDENTIALS"))
	})

	t.Run("unknown username gets the same error as a wrong password", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		f.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, err := f.svc.Login(ctx, LoginInput{Username: "ghost", Password: "s3cret-pass"})
		assert.True(t, shared.IsCode(err, "INVALID_CREDENTIALS"))
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := f.newUser(t, "jdoe", "s3cret-pass")
		require.NoError(t, user.Deactivate())

		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "s3cret-pass"})
		assert.True(t, shared.IsCode(err, "ACCOUNT_DEACTIVATED"))
	})

	t.Run("login survives a failed last-login write", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := f.newUser(t, "jdoe", "s3cret-pass")

		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(shared.ErrConcurrencyConflict)

		result, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, f *authServiceFixture) *auth.TokenPair {
		t.Helper()
		user := f.newUser(t, "jdoe", "s3cret-pass")
		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)
		result, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "s3cret-pass"})
		require.NoError(t, err)
		return result.Tokens
	}

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		tokens := login(t, f)

		pair, err := f.svc.Refresh(ctx, RefreshInput{RefreshToken: tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		_, err := f.svc.Refresh(ctx, RefreshInput{RefreshToken: "not-a-token"})
		assert.True(t, shared.IsCode(err, "INVALID_TOKEN"))
	})

	t.Run("access token is not accepted for refresh", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		tokens := login(t, f)

		_, err := f.svc.Refresh(ctx, RefreshInput{RefreshToken: tokens.AccessToken})
		assert.True(t, shared.IsCode(err, "INVALID_TOKEN"))
	})

	t.Run("refresh after global logout is rejected", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		tokens := login(t, f)

		claims, err := f.jwtService.ValidateRefreshToken(tokens.RefreshToken)
		require.NoError(t, err)
		require.NoError(t, f.blacklist.AddUserTokensToBlacklist(ctx, claims.UserID, time.Hour))

		_, err = f.svc.Refresh(ctx, RefreshInput{RefreshToken: tokens.RefreshToken})
		assert.True(t, shared.IsCode(err, "INVALID_TOKEN"))
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the presented token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := f.newUser(t, "jdoe", "s3cret-pass")
		f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := f.svc.Login(ctx, LoginInput{Username: "jdoe", Password: "s3cret-pass"})
		require.NoError(t, err)

		require.NoError(t, f.svc.Logout(ctx, result.Tokens.AccessToken))

		claims, err := f.jwtService.ValidateAccessToken(result.Tokens.AccessToken)
		require.NoError(t, err)
		blacklisted, err := f.blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("logout with a garbage token is a no-op", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		assert.NoError(t, f.svc.Logout(ctx, "not-a-token"))
	})

	t.Run("logout all requires a principal", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		err := f.svc.LogoutAll(ctx, nil, time.Hour)
		assert.True(t, shared.IsCode(err, shared.CodeUnauthorized))
	})
}
