package domain

import (
	"errors"
	"time"
)

// SkillType distinguishes skills a member can teach from skills they want to learn.
type SkillType string

const (
	TypeOffer SkillType = "offer"
	TypeWant  SkillType = "want"
)

// SkillCategory is the closed set of browsable categories.
type SkillCategory string

const (
	CategoryTechnology SkillCategory = "technology"
	CategoryCultural   SkillCategory = "cultural"
	CategorySports     SkillCategory = "sports"
	CategoryEsports    SkillCategory = "esports"
)

var ErrValidation = errors.New("validation failed")
var ErrSkillNotFound = errors.New("skill not found")
var ErrForbidden = errors.New("access forbidden")

// ValidType reports whether t is one of the two recognised skill types.
func ValidType(t SkillType) bool {
	return t == TypeOffer || t == TypeWant
}

// ValidCategory reports whether c belongs to the enumerated category set.
func ValidCategory(c SkillCategory) bool {
	switch c {
	case CategoryTechnology, CategoryCultural, CategorySports, CategoryEsports:
		return true
	}
	return false
}

// Employment records current employment relevant to a skill. A nil
// *Employment on a Skill means the owner is not employed; the invalid
// "unemployed but has an employer" combination cannot be represented.
type Employment struct {
	Years    int    `json:"years" bson:"years"`
	Employer string `json:"employer" bson:"employer"`
}

// Skill is a teachable or desired competency owned by exactly one user.
// OwnerID is immutable after creation; skills are never edited in place,
// only withdrawn and re-added.
type Skill struct {
	ID              string        `json:"id"`
	OwnerID         string        `json:"owner_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Category        SkillCategory `json:"category"`
	Type            SkillType     `json:"type"`
	ExperienceYears int           `json:"experience_years"`
	Employment      *Employment   `json:"employment,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
