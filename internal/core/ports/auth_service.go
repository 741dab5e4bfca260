package ports

import (
	"context"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// AuthService is the identity provider the engine consumes: it turns
// credentials into an authenticated user id carried by a signed token.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
