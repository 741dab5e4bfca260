package ports

import (
	"context"
	"time"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// CreateSwapInput carries the triple a member submits to open a swap.
// The recipient is derived from the requested skill, never supplied.
type CreateSwapInput struct {
	FromUserID       string
	OfferedSkillID   string
	RequestedSkillID string
}

// UserRef is the minimal counterpart identity on a resolved swap view.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SkillRef is a referenced skill resolved for display. Title falls back to a
// placeholder when the skill has been withdrawn since the request was made.
type SkillRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SwapView is a swap request resolved with usernames and skill titles.
type SwapView struct {
	ID             string    `json:"id"`
	FromUser       UserRef   `json:"from_user"`
	ToUser         UserRef   `json:"to_user"`
	OfferedSkill   SkillRef  `json:"offered_skill"`
	RequestedSkill SkillRef  `json:"requested_skill"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// SwapService defines the Swap Request Factory and Lifecycle State Machine
// use cases.
type SwapService interface {
	Create(ctx context.Context, input CreateSwapInput) (*domain.SwapRequest, error)
	Received(ctx context.Context, userID string) ([]SwapView, error)
	Sent(ctx context.Context, userID string) ([]SwapView, error)
	// UpdateStatus records the recipient's decision. Only the request's
	// recipient may call it, and only with a terminal status.
	UpdateStatus(ctx context.Context, recipientID, requestID string, status domain.SwapStatus) (*domain.SwapRequest, error)
}
