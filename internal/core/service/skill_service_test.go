package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-api/internal/core/domain"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubSkillRepo struct {
	skills    []*domain.Skill // insertion order
	nextID    int
	createErr error
}

func newStubSkillRepo() *stubSkillRepo {
	return &stubSkillRepo{nextID: 1}
}

func (r *stubSkillRepo) Create(_ context.Context, s *domain.Skill) (*domain.Skill, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *s
	clone.ID = "skill_" + strconv.Itoa(r.nextID)
	r.nextID++
	r.skills = append(r.skills, &clone)
	out := clone
	return &out, nil
}

func (r *stubSkillRepo) FindByID(_ context.Context, id string) (*domain.Skill, error) {
	for _, s := range r.skills {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSkillNotFound
}

func (r *stubSkillRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Skill, error) {
	out := make(map[string]*domain.Skill)
	for _, id := range ids {
		for _, s := range r.skills {
			if s.ID == id {
				clone := *s
				out[id] = &clone
			}
		}
	}
	return out, nil
}

func (r *stubSkillRepo) ListAll(_ context.Context) ([]*domain.Skill, error) {
	out := make([]*domain.Skill, 0, len(r.skills))
	for _, s := range r.skills {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSkillRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Skill, error) {
	var out []*domain.Skill
	for _, s := range r.skills {
		if s.OwnerID == ownerID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSkillRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.skills {
		if s.ID == id {
			r.skills = append(r.skills[:i], r.skills[i+1:]...)
			return nil
		}
	}
	return domain.ErrSkillNotFound
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = "user_" + strconv.Itoa(len(r.users)+1)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

type stubCache struct {
	stored []ports.SkillView
	warm   bool
	gets   int
	sets   int
}

func (c *stubCache) Get(_ context.Context) ([]ports.SkillView, bool) {
	c.gets++
	if !c.warm {
		return nil, false
	}
	return c.stored, true
}

func (c *stubCache) Set(_ context.Context, views []ports.SkillView) {
	c.sets++
	c.stored = views
	c.warm = true
}

type stubNotifier struct {
	events []domain.Event
}

func (n *stubNotifier) Publish(e domain.Event) {
	n.events = append(n.events, e)
}

var discardLogger = zerolog.Nop()

func newSkillService(repo *stubSkillRepo, users *stubUserRepo) (*SkillService, *stubCache, *stubNotifier) {
	cache := &stubCache{}
	notifier := &stubNotifier{}
	return NewSkillService(repo, users, cache, notifier, discardLogger), cache, notifier
}

func addInput(ownerID, title, typ string) ports.AddSkillInput {
	return ports.AddSkillInput{
		OwnerID:  ownerID,
		Title:    title,
		Category: "technology",
		Type:     typ,
	}
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func TestSkillService_Add_Success(t *testing.T) {
	repo := newStubSkillRepo()
	svc, _, notifier := newSkillService(repo, newStubUserRepo())

	skill, err := svc.Add(context.Background(), addInput("user_1", "Guitar", "offer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if skill.ID == "" {
		t.Error("expected a generated id")
	}
	if skill.OwnerID != "user_1" {
		t.Errorf("expected owner user_1, got %s", skill.OwnerID)
	}
	if skill.Type != domain.TypeOffer {
		t.Errorf("expected type offer, got %s", skill.Type)
	}
	if skill.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
	if len(notifier.events) != 1 || notifier.events[0].Kind != domain.EventSkillAdded {
		t.Errorf("expected a skill_added event, got %+v", notifier.events)
	}
}

func TestSkillService_Add_EmptyTitle(t *testing.T) {
	repo := newStubSkillRepo()
	svc, _, _ := newSkillService(repo, newStubUserRepo())

	_, err := svc.Add(context.Background(), addInput("user_1", "", "offer"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.skills) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
}

func TestSkillService_Add_RejectsUnknownTypeAndCategory(t *testing.T) {
	svc, _, _ := newSkillService(newStubSkillRepo(), newStubUserRepo())

	in := addInput("user_1", "Guitar", "teach")
	if _, err := svc.Add(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad type, got %v", err)
	}

	in = addInput("user_1", "Guitar", "offer")
	in.Category = "music"
	if _, err := svc.Add(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad category, got %v", err)
	}
}

func TestSkillService_Add_ClampsNegativeYears(t *testing.T) {
	svc, _, _ := newSkillService(newStubSkillRepo(), newStubUserRepo())

	in := addInput("user_1", "Guitar", "offer")
	in.ExperienceYears = -3
	in.Employed = true
	in.EmployedYears = -2
	in.Employer = "Acme"

	skill, err := svc.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skill.ExperienceYears != 0 {
		t.Errorf("expected experience clamped to 0, got %d", skill.ExperienceYears)
	}
	if skill.Employment == nil || skill.Employment.Years != 0 || skill.Employment.Employer != "Acme" {
		t.Errorf("unexpected employment: %+v", skill.Employment)
	}
}

func TestSkillService_Add_UnemployedHasNoEmployment(t *testing.T) {
	svc, _, _ := newSkillService(newStubSkillRepo(), newStubUserRepo())

	in := addInput("user_1", "Guitar", "offer")
	in.Employed = false
	in.EmployedYears = 5
	in.Employer = "Acme"

	skill, err := svc.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skill.Employment != nil {
		t.Errorf("employment must be nil when not employed, got %+v", skill.Employment)
	}
}

// ---------------------------------------------------------------------------
// ListAll / ListMine
// ---------------------------------------------------------------------------

func TestSkillService_ListAll_JoinsOwnersInInsertionOrder(t *testing.T) {
	repo := newStubSkillRepo()
	users := newStubUserRepo(
		&domain.User{ID: "user_1", Username: "alice"},
		&domain.User{ID: "user_2", Username: "bob"},
	)
	svc, _, _ := newSkillService(repo, users)

	for i, in := range []ports.AddSkillInput{
		addInput("user_1", "Guitar", "offer"),
		addInput("user_2", "Spanish", "want"),
		addInput("user_1", "Chess", "offer"),
	} {
		if _, err := svc.Add(context.Background(), in); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	views, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	titles := []string{"Guitar", "Spanish", "Chess"}
	owners := []string{"alice", "bob", "alice"}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	for i, v := range views {
		if v.Title != titles[i] {
			t.Errorf("view %d: expected title %q, got %q", i, titles[i], v.Title)
		}
		if v.Owner.Username != owners[i] {
			t.Errorf("view %d: expected owner %q, got %q", i, owners[i], v.Owner.Username)
		}
	}
}

func TestSkillService_ListAll_UsesWarmCache(t *testing.T) {
	repo := newStubSkillRepo()
	svc, cache, _ := newSkillService(repo, newStubUserRepo())

	cache.warm = true
	cache.stored = []ports.SkillView{{ID: "cached", Title: "Cached"}}

	views, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "cached" {
		t.Fatalf("expected the cached listing, got %+v", views)
	}
	if cache.sets != 0 {
		t.Error("cache must not be rewritten on a hit")
	}
}

func TestSkillService_ListAll_PopulatesCacheOnMiss(t *testing.T) {
	repo := newStubSkillRepo()
	users := newStubUserRepo(&domain.User{ID: "user_1", Username: "alice"})
	svc, cache, _ := newSkillService(repo, users)

	if _, err := svc.Add(context.Background(), addInput("user_1", "Guitar", "offer")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.ListAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache set, got %d", cache.sets)
	}
}

func TestSkillService_ListAll_Idempotent(t *testing.T) {
	repo := newStubSkillRepo()
	users := newStubUserRepo(&domain.User{ID: "user_1", Username: "alice"})
	svc, _, _ := newSkillService(repo, users)

	if _, err := svc.Add(context.Background(), addInput("user_1", "Guitar", "offer")); err != nil {
		t.Fatalf("add: %v", err)
	}

	first, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Errorf("listings differ with no intervening writes:\n%+v\n%+v", first, second)
	}
}

func TestSkillService_ListMine_FiltersByOwner(t *testing.T) {
	repo := newStubSkillRepo()
	users := newStubUserRepo(
		&domain.User{ID: "user_1", Username: "alice"},
		&domain.User{ID: "user_2", Username: "bob"},
	)
	svc, _, _ := newSkillService(repo, users)

	_, _ = svc.Add(context.Background(), addInput("user_1", "Guitar", "offer"))
	_, _ = svc.Add(context.Background(), addInput("user_2", "Spanish", "want"))

	mine, err := svc.ListMine(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "Guitar" {
		t.Fatalf("expected only Guitar, got %+v", mine)
	}
}

// ---------------------------------------------------------------------------
// Withdraw
// ---------------------------------------------------------------------------

func TestSkillService_Withdraw_Success(t *testing.T) {
	repo := newStubSkillRepo()
	svc, _, notifier := newSkillService(repo, newStubUserRepo())

	skill, _ := svc.Add(context.Background(), addInput("user_1", "Guitar", "offer"))

	if err := svc.Withdraw(context.Background(), "user_1", skill.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.skills) != 0 {
		t.Error("skill should be hard-deleted")
	}

	var removed []domain.Event
	for _, e := range notifier.events {
		if e.Kind == domain.EventSkillRemoved {
			removed = append(removed, e)
		}
	}
	if len(removed) != 1 || removed[0].SkillID != skill.ID {
		t.Errorf("expected one skill_removed event for %s, got %+v", skill.ID, removed)
	}
}

func TestSkillService_Withdraw_NonOwnerForbidden(t *testing.T) {
	repo := newStubSkillRepo()
	svc, _, notifier := newSkillService(repo, newStubUserRepo())

	skill, _ := svc.Add(context.Background(), addInput("user_1", "Guitar", "offer"))

	err := svc.Withdraw(context.Background(), "user_2", skill.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.skills) != 1 {
		t.Error("skill must survive a forbidden withdrawal")
	}
	for _, e := range notifier.events {
		if e.Kind == domain.EventSkillRemoved {
			t.Error("no removal event may be published on failure")
		}
	}
}

func TestSkillService_Withdraw_NotFound(t *testing.T) {
	svc, _, _ := newSkillService(newStubSkillRepo(), newStubUserRepo())

	err := svc.Withdraw(context.Background(), "user_1", "missing")
	if !errors.Is(err, domain.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
