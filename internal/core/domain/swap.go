package domain

import (
	"errors"
	"time"
)

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	StatusPending  SwapStatus = "pending"
	StatusAccepted SwapStatus = "accepted"
	StatusRejected SwapStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Both reachable states are terminal; there is no way back out of them.
var validTransitions = map[SwapStatus][]SwapStatus{
	StatusPending: {StatusAccepted, StatusRejected},
}

var ErrSwapNotFound = errors.New("swap request not found")
var ErrNoOfferSkill = errors.New("requester has no offer skill")
var ErrInvalidOffer = errors.New("offered skill is not a valid offer")
var ErrSelfRequest = errors.New("cannot request own skill")
var ErrStatusConflict = errors.New("swap request already decided")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s SwapStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// SwapRequest is a proposal to exchange one of the sender's offer-typed
// skills for access to another member's skill. ToUserID is always derived
// from the requested skill's owner, never supplied by a caller.
type SwapRequest struct {
	ID               string     `json:"id"`
	FromUserID       string     `json:"from_user_id"`
	ToUserID         string     `json:"to_user_id"`
	OfferedSkillID   string     `json:"offered_skill_id"`
	RequestedSkillID string     `json:"requested_skill_id"`
	Status           SwapStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}
