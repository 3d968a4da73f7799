package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/auth"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshInput contains the refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest is the input for creating a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required,role"`
}

// AssignRoleRequest is the input for changing a user's role
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// UserResponse is the API view of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	EntityID    uuid.UUID  `json:"entity_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a user to its API view
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		EntityID:    u.EntityID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role.String(),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// CreateAccountRequest is the input for creating an account
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse is the API view of an account
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToAccountResponse converts an account to its API view
func ToAccountResponse(a *identity.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

// CreateEntityRequest is the input for creating an entity
type CreateEntityRequest struct {
	Name      string     `json:"name" binding:"required"`
	AccountID *uuid.UUID `json:"account_id"`
}

// EntityResponse is the API view of an entity
type EntityResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToEntityResponse converts an entity to its API view
func ToEntityResponse(e *identity.Entity) *EntityResponse {
	return &EntityResponse{
		ID:        e.ID,
		Name:      e.Name,
		AccountID: e.AccountID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}
