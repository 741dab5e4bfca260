package ports

import (
	"context"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// SkillRepository defines persistence operations for skills.
// List operations return skills in insertion order (stable, not ranked).
type SkillRepository interface {
	Create(ctx context.Context, s *domain.Skill) (*domain.Skill, error)
	FindByID(ctx context.Context, id string) (*domain.Skill, error)
	// FindByIDs resolves a set of skill ids in one round trip. Ids with no
	// matching skill are absent from the result map, not an error: swap
	// views must stay readable when a referenced skill has been withdrawn.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Skill, error)
	ListAll(ctx context.Context) ([]*domain.Skill, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Skill, error)
	Delete(ctx context.Context, id string) error
}
