package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	shared.EntityRepository[User]
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// EntityRepository defines the interface for entity persistence
type EntityRepository interface {
	shared.Repository[Entity]
	FindAll(ctx context.Context, filter shared.Filter) ([]Entity, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Entity, error)
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	shared.Repository[Account]
}
