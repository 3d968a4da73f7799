package identity

import (
	"strings"
	"time"

	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// Account is an organisation grouping one or more entities. Account
// admins administer every entity under their account.
type Account struct {
	shared.BaseAggregateRoot
	Name string
}

// NewAccount creates a new account
func NewAccount(name string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("account name cannot exceed 200 characters")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename changes the account name
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("account name cannot be empty")
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}
