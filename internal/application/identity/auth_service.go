package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	entityRepo identity.EntityRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	entityRepo identity.EntityRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		entityRepo: entityRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("user not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		s.logger.Warn("login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	accountID, err := s.accountIDFor(ctx, user)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		EntityID:  user.EntityID,
		AccountID: accountID,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login, just log it.
		s.logger.Error("failed to record login", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		User:   ToUserResponse(user),
		Tokens: tokenPair,
	}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	if blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err == nil && blacklisted {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Token has been revoked")
	}
	if claims.IssuedAt != nil {
		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
		if err == nil && invalidated {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Token has been revoked")
		}
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	return pair, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already unusable.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// LogoutAll revokes every token the user holds
func (s *AuthService) LogoutAll(ctx context.Context, p *identity.Principal, ttl time.Duration) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, p.ID.String(), ttl); err != nil {
		s.logger.Error("failed to invalidate user tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke tokens")
	}
	return nil
}

// accountIDFor resolves the account link of the user's entity
func (s *AuthService) accountIDFor(ctx context.Context, user *identity.User) (*uuid.UUID, error) {
	entity, err := s.entityRepo.FindByID(ctx, user.EntityID)
	if err != nil {
		s.logger.Error("failed to resolve user entity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve user entity")
	}
	return entity.AccountID, nil
}
