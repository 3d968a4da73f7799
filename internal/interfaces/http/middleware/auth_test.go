package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/auth"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-middleware-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "office-mgmt-test",
		MaxRefreshCount:        10,
	})
}

func newTestTokenPair(t *testing.T, svc *auth.JWTService) *auth.TokenPair {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		EntityID: uuid.New(),
		UserID:   uuid.New(),
		Username: "tester",
		Role:     identity.RoleEntityUser,
	})
	require.NoError(t, err)
	return pair
}

func authTestRouter(cfg AuthConfig) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected", Auth(cfg), func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": p.Username})
	})
	return engine
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair := newTestTokenPair(t, svc)
	engine := authTestRouter(AuthConfig{JWTService: svc})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tester")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	engine := authTestRouter(AuthConfig{JWTService: newTestJWTService()})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	svc := newTestJWTService()
	pair := newTestTokenPair(t, svc)
	engine := authTestRouter(AuthConfig{JWTService: svc})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	engine := authTestRouter(AuthConfig{JWTService: newTestJWTService()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc := newTestJWTService()
	pair := newTestTokenPair(t, svc)
	engine := authTestRouter(AuthConfig{JWTService: svc})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newTestJWTService()
	pair := newTestTokenPair(t, svc)
	blacklist := auth.NewInMemoryTokenBlacklist()

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Minute))

	engine := authTestRouter(AuthConfig{JWTService: svc, TokenBlacklist: blacklist})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestAuthMiddleware_UserInvalidated(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		EntityID: uuid.New(),
		UserID:   userID,
		Username: "tester",
		Role:     identity.RoleEntityUser,
	})
	require.NoError(t, err)

	// Global logout after the token was issued invalidates it.
	require.NoError(t, blacklist.AddUserTokensToBlacklist(t.Context(), userID.String(), time.Hour))

	engine := authTestRouter(AuthConfig{JWTService: svc, TokenBlacklist: blacklist})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
