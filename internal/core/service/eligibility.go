package service

import (
	"strings"

	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// Requestable computes the subset of skills a viewer may request: never
// their own, and when query is non-empty only skills whose title or category
// contains it case-insensitively. The input order is preserved and the
// function holds no state, so the result is re-derivable from the full
// listing at any time.
func Requestable(viewerID string, skills []ports.SkillView, query string) []ports.SkillView {
	q := strings.ToLower(query)

	out := make([]ports.SkillView, 0, len(skills))
	for _, s := range skills {
		if s.Owner.ID == viewerID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Title), q) &&
			!strings.Contains(strings.ToLower(s.Category), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}
