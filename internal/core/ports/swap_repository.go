package ports

import (
	"context"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, r *domain.SwapRequest) (*domain.SwapRequest, error)
	FindByID(ctx context.Context, id string) (*domain.SwapRequest, error)
	ListReceived(ctx context.Context, userID string) ([]*domain.SwapRequest, error)
	ListSent(ctx context.Context, userID string) ([]*domain.SwapRequest, error)
	// UpdateStatus performs a compare-and-set: the write succeeds only while
	// the stored status is still pending. Returns the updated request,
	// domain.ErrSwapNotFound when the id is unknown, or
	// domain.ErrStatusConflict when the request was already decided.
	UpdateStatus(ctx context.Context, id string, status domain.SwapStatus) (*domain.SwapRequest, error)
}
