package ports

import (
	"context"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// UserRepository defines persistence operations for member identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a set of user ids in one round trip. Ids with no
	// matching user are simply absent from the result map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}
