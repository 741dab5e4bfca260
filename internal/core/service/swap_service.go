package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-api/internal/core/domain"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// skillPlaceholder is rendered in place of a title whose skill has been
// withdrawn since the request was created.
const skillPlaceholder = "—"

// SwapService implements the Swap Request Factory and the lifecycle state
// machine over swap requests.
type SwapService struct {
	swaps    ports.SwapRepository
	skills   ports.SkillRepository
	users    ports.UserRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewSwapService(
	swaps ports.SwapRepository,
	skills ports.SkillRepository,
	users ports.UserRepository,
	notifier Notifier,
	logger zerolog.Logger,
) *SwapService {
	return &SwapService{
		swaps:    swaps,
		skills:   skills,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Create validates the (requester, offered skill, requested skill) triple and
// persists a pending swap request. The preconditions are checked in a fixed
// order so each violation maps to a distinct error, and nothing is written
// until all of them hold.
func (s *SwapService) Create(ctx context.Context, input ports.CreateSwapInput) (*domain.SwapRequest, error) {
	mine, err := s.skills.ListByOwner(ctx, input.FromUserID)
	if err != nil {
		return nil, err
	}

	// 1. The requester must have something to offer at all.
	var offered *domain.Skill
	hasOffer := false
	for _, sk := range mine {
		if sk.Type != domain.TypeOffer {
			continue
		}
		hasOffer = true
		if sk.ID == input.OfferedSkillID {
			offered = sk
		}
	}
	if !hasOffer {
		return nil, domain.ErrNoOfferSkill
	}

	// 2. The chosen offer must be theirs and offer-typed.
	if offered == nil {
		return nil, domain.ErrInvalidOffer
	}

	// 3. The requested skill must still exist; its owner is the recipient.
	requested, err := s.skills.FindByID(ctx, input.RequestedSkillID)
	if err != nil {
		return nil, err
	}

	// 4. No self-requests.
	if requested.OwnerID == input.FromUserID {
		return nil, domain.ErrSelfRequest
	}

	request := &domain.SwapRequest{
		FromUserID:       input.FromUserID,
		ToUserID:         requested.OwnerID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: requested.ID,
		Status:           domain.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.swaps.Create(ctx, request)
	if err != nil {
		s.logger.Error().Err(err).Str("from_user_id", input.FromUserID).Msg("failed to create swap request")
		return nil, err
	}

	s.logger.Info().
		Str("swap_id", created.ID).
		Str("from_user_id", created.FromUserID).
		Str("to_user_id", created.ToUserID).
		Msg("swap request created")

	return created, nil
}

// Received returns every request addressed to userID, resolved for display.
func (s *SwapService) Received(ctx context.Context, userID string) ([]ports.SwapView, error) {
	requests, err := s.swaps.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, requests)
}

// Sent returns every request userID has sent, resolved for display.
func (s *SwapService) Sent(ctx context.Context, userID string) ([]ports.SwapView, error) {
	requests, err := s.swaps.ListSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, requests)
}

// UpdateStatus records the recipient's decision on a pending request. The
// storage layer applies a compare-and-set on the stored status, so a request
// that was already decided surfaces domain.ErrStatusConflict instead of
// silently overwriting the first decision.
func (s *SwapService) UpdateStatus(ctx context.Context, recipientID, requestID string, status domain.SwapStatus) (*domain.SwapRequest, error) {
	request, err := s.swaps.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != recipientID {
		return nil, fmt.Errorf("%w: only the recipient may decide a swap request", domain.ErrForbidden)
	}
	if !domain.StatusPending.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.StatusAccepted, domain.StatusRejected)
	}

	updated, err := s.swaps.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(domain.SwapStatusChanged(updated.ID, updated.Status, time.Now().UTC()))

	s.logger.Info().
		Str("swap_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("swap request decided")

	return updated, nil
}

// resolve joins requests with counterpart usernames and skill titles.
// Unresolvable references degrade to placeholders rather than failing the
// whole view.
func (s *SwapService) resolve(ctx context.Context, requests []*domain.SwapRequest) ([]ports.SwapView, error) {
	userIDs := make([]string, 0, len(requests)*2)
	skillIDs := make([]string, 0, len(requests)*2)
	seenUsers := make(map[string]struct{})
	seenSkills := make(map[string]struct{})
	for _, r := range requests {
		for _, id := range []string{r.FromUserID, r.ToUserID} {
			if _, ok := seenUsers[id]; !ok {
				seenUsers[id] = struct{}{}
				userIDs = append(userIDs, id)
			}
		}
		for _, id := range []string{r.OfferedSkillID, r.RequestedSkillID} {
			if _, ok := seenSkills[id]; !ok {
				seenSkills[id] = struct{}{}
				skillIDs = append(skillIDs, id)
			}
		}
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	skills, err := s.skills.FindByIDs(ctx, skillIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.SwapView, 0, len(requests))
	for _, r := range requests {
		views = append(views, ports.SwapView{
			ID:             r.ID,
			FromUser:       userRef(users, r.FromUserID),
			ToUser:         userRef(users, r.ToUserID),
			OfferedSkill:   skillRef(skills, r.OfferedSkillID),
			RequestedSkill: skillRef(skills, r.RequestedSkillID),
			Status:         string(r.Status),
			CreatedAt:      r.CreatedAt,
		})
	}
	return views, nil
}

func userRef(users map[string]*domain.User, id string) ports.UserRef {
	ref := ports.UserRef{ID: id}
	if u, ok := users[id]; ok {
		ref.Username = u.Username
	}
	return ref
}

func skillRef(skills map[string]*domain.Skill, id string) ports.SkillRef {
	ref := ports.SkillRef{ID: id, Title: skillPlaceholder}
	if sk, ok := skills[id]; ok {
		ref.Title = sk.Title
	}
	return ref
}
