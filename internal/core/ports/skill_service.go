package ports

import (
	"context"
	"time"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

// AddSkillInput carries all data needed to publish a new skill.
// The flat employed/years/employer triple mirrors the client payload; the
// service folds it into the employment variant on the domain type.
type AddSkillInput struct {
	OwnerID         string
	Title           string
	Description     string
	Category        string
	Type            string
	ExperienceYears int
	Employed        bool
	EmployedYears   int
	Employer        string
}

// OwnerRef is the minimal owner identity joined onto listed skills.
type OwnerRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SkillView is a skill resolved with its owner for display.
type SkillView struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Category        string             `json:"category"`
	Type            string             `json:"type"`
	ExperienceYears int                `json:"experience_years"`
	Employment      *domain.Employment `json:"employment,omitempty"`
	Owner           OwnerRef           `json:"owner"`
	CreatedAt       time.Time          `json:"created_at"`
}

// SkillService defines the Skill Registry use cases.
type SkillService interface {
	Add(ctx context.Context, input AddSkillInput) (*domain.Skill, error)
	ListAll(ctx context.Context) ([]SkillView, error)
	ListMine(ctx context.Context, ownerID string) ([]SkillView, error)
	// Requestable returns the subset of all skills the viewer may request:
	// never their own, optionally narrowed by a search query.
	Requestable(ctx context.Context, viewerID, query string) ([]SkillView, error)
	Withdraw(ctx context.Context, requesterID, skillID string) error
}
