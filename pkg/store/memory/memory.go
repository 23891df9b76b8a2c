// Package memory provides an in-memory implementation of the
// [github.com/savanth/folio/pkg/store.Store] interface.
//
// The memory store backs unit tests and the -memory development mode, where
// the server runs without any database. It holds copies of every record
// behind a single mutex and honors the same contracts as the database
// backends: nil for missing records, sorted list results, and upsert-by-owner
// for profile and contact info.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// MemoryStore implements the Store interface with maps guarded by one mutex.
// All getters return copies so callers can never mutate stored records.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[models.UserID]*models.User
	profiles map[models.ProfileID]*models.Profile
	contacts map[models.ContactInfoID]*models.ContactInfo
	projects map[models.ProjectID]*models.Project
	skills   map[models.SkillID]*models.Skill
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() store.Store {
	return &MemoryStore{
		users:    make(map[models.UserID]*models.User),
		profiles: make(map[models.ProfileID]*models.Profile),
		contacts: make(map[models.ContactInfoID]*models.ContactInfo),
		projects: make(map[models.ProjectID]*models.Project),
		skills:   make(map[models.SkillID]*models.Skill),
	}
}

// Migrate is a no-op for the in-memory store
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error { return nil }

// User operations

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// Profile operations

func (s *MemoryStore) GetProfile(ctx context.Context, owner models.UserID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileByOwner(owner)
	if p == nil {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (s *MemoryStore) GetLatestProfile(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Profile
	for _, p := range s.profiles {
		if latest == nil || p.UpdatedAt.After(latest.UpdatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (s *MemoryStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing := s.profileByOwner(profile.OwnerID); existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		if profile.ID.IsZero() {
			profile.ID = models.NewProfileID()
		}
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	p := *profile
	s.profiles[profile.ID] = &p
	return nil
}

func (s *MemoryStore) UpdateSkillCategoryOrder(ctx context.Context, owner models.UserID, order []models.SkillCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profileByOwner(owner)
	if p == nil {
		p = &models.Profile{
			ID:        models.NewProfileID(),
			OwnerID:   owner,
			CreatedAt: time.Now(),
		}
		s.profiles[p.ID] = p
	}
	p.SkillCategoryOrder = append(models.CategoryList(nil), order...)
	p.UpdatedAt = time.Now()
	return nil
}

// profileByOwner returns the live record, not a copy. Callers must hold s.mu.
func (s *MemoryStore) profileByOwner(owner models.UserID) *models.Profile {
	for _, p := range s.profiles {
		if p.OwnerID == owner {
			return p
		}
	}
	return nil
}

// Contact info operations

func (s *MemoryStore) GetContactInfo(ctx context.Context, owner models.UserID) (*models.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.OwnerID == owner {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var existing *models.ContactInfo
	for _, c := range s.contacts {
		if c.OwnerID == info.OwnerID {
			existing = c
			break
		}
	}
	if existing != nil {
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
	} else {
		if info.ID.IsZero() {
			info.ID = models.NewContactInfoID()
		}
		info.CreatedAt = now
	}
	info.UpdatedAt = now
	c := *info
	s.contacts[info.ID] = &c
	return nil
}

// Project operations

func (s *MemoryStore) ListProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Project{}
	for _, p := range s.projects {
		if p.OwnerID == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *MemoryStore) ListFeaturedProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	all, err := s.ListProjects(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := []*models.Project{}
	for _, p := range all {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if project.ID.IsZero() {
		project.ID = models.NewProjectID()
	}
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	p := *project
	s.projects[project.ID] = &p
	return nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.UpdatedAt = time.Now()
	p := *project
	s.projects[project.ID] = &p
	return nil
}

func (s *MemoryStore) UpdateProjectOrder(ctx context.Context, id models.ProjectID, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil
	}
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

// Skill operations

func (s *MemoryStore) ListSkills(ctx context.Context, owner models.UserID) ([]*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Skill{}
	for _, sk := range s.skills {
		if sk.OwnerID == owner {
			cp := *sk
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (s *MemoryStore) CreateSkill(ctx context.Context, skill *models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if skill.ID.IsZero() {
		skill.ID = models.NewSkillID()
	}
	now := time.Now()
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = now
	}
	skill.UpdatedAt = now
	sk := *skill
	s.skills[skill.ID] = &sk
	return nil
}

func (s *MemoryStore) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	skill.UpdatedAt = time.Now()
	sk := *skill
	s.skills[skill.ID] = &sk
	return nil
}

func (s *MemoryStore) UpdateSkillOrder(ctx context.Context, id models.SkillID, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, ok := s.skills[id]
	if !ok {
		return nil
	}
	sk.SortOrder = order
	sk.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DeleteSkill(ctx context.Context, id models.SkillID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.skills, id)
	return nil
}
