package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store/memory"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	user := &models.User{Email: "owner@example.com", Name: "Owner"}
	require.NoError(t, s.CreateUser(ctx, user))
	require.False(t, user.ID.IsZero(), "ID assigned on create")

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "owner@example.com", got.Email)

	byEmail, err := s.GetUserByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := s.GetUser(ctx, models.NewUserID())
	require.NoError(t, err, "missing record is not an error")
	assert.Nil(t, missing)
}

func TestProfileUpsertByOwner(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()
	owner := models.NewUserID()

	first := &models.Profile{OwnerID: owner, WebsiteName: "Folio", HeroTitle: "Hi"}
	require.NoError(t, s.UpsertProfile(ctx, first))
	require.False(t, first.ID.IsZero())

	// Second save for the same owner lands on the same record.
	second := &models.Profile{OwnerID: owner, WebsiteName: "Folio v2", HeroTitle: "Hello"}
	require.NoError(t, s.UpsertProfile(ctx, second))
	assert.Equal(t, first.ID, second.ID, "owner identity maps to one profile")

	got, err := s.GetProfile(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Folio v2", got.WebsiteName, "last writer wins")
}

func TestGetLatestProfile(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()

	latest, err := s.GetLatestProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "no profiles yet")

	older := &models.Profile{OwnerID: models.NewUserID(), WebsiteName: "Old", HeroTitle: "t"}
	require.NoError(t, s.UpsertProfile(ctx, older))

	time.Sleep(2 * time.Millisecond)

	newer := &models.Profile{OwnerID: models.NewUserID(), WebsiteName: "New", HeroTitle: "t"}
	require.NoError(t, s.UpsertProfile(ctx, newer))

	latest, err = s.GetLatestProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "New", latest.WebsiteName)
}

func TestSkillCategoryOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()
	owner := models.NewUserID()

	order := []models.SkillCategory{models.SkillCategoryTools, models.SkillCategoryFrontend}
	require.NoError(t, s.UpdateSkillCategoryOrder(ctx, owner, order))

	got, err := s.GetProfile(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, got, "category reorder before profile save creates a stub profile")
	assert.Equal(t, models.CategoryList(order), got.SkillCategoryOrder)
}

func TestProjectOrdering(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()
	owner := models.NewUserID()

	for i, title := range []string{"first", "second", "third"} {
		p := &models.Project{OwnerID: owner, Title: title, SortOrder: i, IsFeatured: i == 1}
		require.NoError(t, s.CreateProject(ctx, p))
	}

	projects, err := s.ListProjects(ctx, owner)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "first", projects[0].Title)
	assert.Equal(t, "third", projects[2].Title)

	// Swap positions of first and third.
	require.NoError(t, s.UpdateProjectOrder(ctx, projects[0].ID, 2))
	require.NoError(t, s.UpdateProjectOrder(ctx, projects[2].ID, 0))

	projects, err = s.ListProjects(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "third", projects[0].Title)
	assert.Equal(t, "first", projects[2].Title)

	featured, err := s.ListFeaturedProjects(ctx, owner)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "second", featured[0].Title)

	// Order write for an unknown ID is a silent no-op.
	require.NoError(t, s.UpdateProjectOrder(ctx, models.NewProjectID(), 9))
}

func TestSkillListingOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()
	owner := models.NewUserID()

	add := func(name string, cat models.SkillCategory, pos int) {
		sk := &models.Skill{OwnerID: owner, Name: name, Category: cat, Percentage: 50, SortOrder: pos}
		require.NoError(t, s.CreateSkill(ctx, sk))
	}
	add("React", models.SkillCategoryFrontend, 1)
	add("Go", models.SkillCategoryBackend, 0)
	add("HTML", models.SkillCategoryFrontend, 0)

	skills, err := s.ListSkills(ctx, owner)
	require.NoError(t, err)
	require.Len(t, skills, 3)

	// Grouped by category, position-ordered within each.
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "HTML", skills[1].Name)
	assert.Equal(t, "React", skills[2].Name)
}

func TestProjectDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMemoryStore()
	owner := models.NewUserID()

	p := &models.Project{OwnerID: owner, Title: "gone soon"}
	require.NoError(t, s.CreateProject(ctx, p))
	require.NoError(t, s.DeleteProject(ctx, p.ID))

	projects, err := s.ListProjects(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
