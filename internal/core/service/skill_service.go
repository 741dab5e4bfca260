package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-api/internal/core/domain"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// SkillCache abstracts the read cache for the full skill listing (Redis).
// A cold or failing cache degrades to repository reads; it never surfaces
// errors to callers. Invalidation happens out of band: the cache subscribes
// to skill events rather than being flushed inline by the registry.
type SkillCache interface {
	Get(ctx context.Context) ([]ports.SkillView, bool)
	Set(ctx context.Context, views []ports.SkillView)
}

// Notifier publishes engine events to whoever subscribed. Delivery is best
// effort and at most once.
type Notifier interface {
	Publish(event domain.Event)
}

// SkillService implements the Skill Registry.
type SkillService struct {
	skills   ports.SkillRepository
	users    ports.UserRepository
	cache    SkillCache
	notifier Notifier
	logger   zerolog.Logger
}

func NewSkillService(
	skills ports.SkillRepository,
	users ports.UserRepository,
	cache SkillCache,
	notifier Notifier,
	logger zerolog.Logger,
) *SkillService {
	return &SkillService{
		skills:   skills,
		users:    users,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Add validates and persists a new skill owned by input.OwnerID.
func (s *SkillService) Add(ctx context.Context, input ports.AddSkillInput) (*domain.Skill, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !domain.ValidType(domain.SkillType(input.Type)) {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrValidation, domain.TypeOffer, domain.TypeWant)
	}
	if !domain.ValidCategory(domain.SkillCategory(input.Category)) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}

	skill := &domain.Skill{
		OwnerID:         input.OwnerID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        domain.SkillCategory(input.Category),
		Type:            domain.SkillType(input.Type),
		ExperienceYears: clampNonNegative(input.ExperienceYears),
		Employment:      toEmployment(input),
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.skills.Create(ctx, skill)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create skill")
		return nil, err
	}

	s.notifier.Publish(domain.SkillAdded(created.ID, created.CreatedAt))

	s.logger.Info().
		Str("skill_id", created.ID).
		Str("owner_id", created.OwnerID).
		Str("type", string(created.Type)).
		Msg("skill added")

	return created, nil
}

// ListAll returns every published skill joined with its owner's identity,
// in insertion order. Served from cache when warm.
func (s *SkillService) ListAll(ctx context.Context) ([]ports.SkillView, error) {
	if views, ok := s.cache.Get(ctx); ok {
		return views, nil
	}

	skills, err := s.skills.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.resolveOwners(ctx, skills)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, views)
	return views, nil
}

// ListMine returns the skills owned by ownerID, in insertion order.
func (s *SkillService) ListMine(ctx context.Context, ownerID string) ([]ports.SkillView, error) {
	skills, err := s.skills.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.resolveOwners(ctx, skills)
}

// Requestable narrows the full listing to what viewerID may request.
func (s *SkillService) Requestable(ctx context.Context, viewerID, query string) ([]ports.SkillView, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Requestable(viewerID, all, query), nil
}

// Withdraw hard-deletes a skill. Only the owner may withdraw; existing swap
// requests referencing the skill are left in place.
func (s *SkillService) Withdraw(ctx context.Context, requesterID, skillID string) error {
	skill, err := s.skills.FindByID(ctx, skillID)
	if err != nil {
		return err
	}
	if skill.OwnerID != requesterID {
		return fmt.Errorf("%w: only the owner may withdraw a skill", domain.ErrForbidden)
	}

	if err := s.skills.Delete(ctx, skillID); err != nil {
		s.logger.Error().Err(err).Str("skill_id", skillID).Msg("failed to delete skill")
		return err
	}

	s.notifier.Publish(domain.SkillRemoved(skillID, time.Now().UTC()))

	s.logger.Info().Str("skill_id", skillID).Str("owner_id", requesterID).Msg("skill withdrawn")
	return nil
}

// resolveOwners joins skills with the minimal owner identity for display.
// A skill whose owner record is missing keeps an empty username instead of
// failing the whole listing.
func (s *SkillService) resolveOwners(ctx context.Context, skills []*domain.Skill) ([]ports.SkillView, error) {
	ids := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		if _, ok := seen[sk.OwnerID]; ok {
			continue
		}
		seen[sk.OwnerID] = struct{}{}
		ids = append(ids, sk.OwnerID)
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.SkillView, 0, len(skills))
	for _, sk := range skills {
		owner := ports.OwnerRef{ID: sk.OwnerID}
		if u, ok := owners[sk.OwnerID]; ok {
			owner.Username = u.Username
		}
		views = append(views, ports.SkillView{
			ID:              sk.ID,
			Title:           sk.Title,
			Description:     sk.Description,
			Category:        string(sk.Category),
			Type:            string(sk.Type),
			ExperienceYears: sk.ExperienceYears,
			Employment:      sk.Employment,
			Owner:           owner,
			CreatedAt:       sk.CreatedAt,
		})
	}
	return views, nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// toEmployment folds the flat employed/years/employer triple into the
// employment variant: nil unless the owner reported being employed.
func toEmployment(input ports.AddSkillInput) *domain.Employment {
	if !input.Employed {
		return nil
	}
	return &domain.Employment{
		Years:    clampNonNegative(input.EmployedYears),
		Employer: input.Employer,
	}
}
