// Package store defines the persistence contract for the folio application.
//
// The [Store] interface abstracts the record store so the same application
// code runs against SurrealDB, PostgreSQL, or the in-memory backend used by
// tests. Implementations live in the subpackages of this package.
//
// # Missing records
//
// Single-record getters return (nil, nil) when no record matches. Absence is
// a normal domain outcome, not an error: the public site renders placeholder
// content when no profile exists, and the admin UI opens empty forms. List
// operations return empty slices, never nil-with-error, for empty scopes.
//
// # Ordering
//
// ListProjects returns the owner's projects sorted by sort_order ascending.
// ListSkills returns the owner's skills sorted by category then sort_order,
// so every category's skills form a contiguous, position-ordered run. The
// ordered collection controller depends on both guarantees.
//
// # Upserts
//
// Profile and contact info are one-row-per-owner records. UpsertProfile and
// UpsertContactInfo insert on first save and overwrite on later saves, keyed
// by owner. Concurrent saves resolve last-writer-wins; there is no version
// guard.
package store

import (
	"context"

	"github.com/savanth/folio/pkg/models"
)

// Store is the persistence interface for all folio record types.
// All operations take a context for cancellation and timeouts.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Profile operations. GetLatestProfile returns the most recently updated
	// profile across all owners; it backs the anonymous public snapshot.
	// UpdateSkillCategoryOrder persists the owner's category display order
	// without touching the rest of the profile.
	GetProfile(ctx context.Context, owner models.UserID) (*models.Profile, error)
	GetLatestProfile(ctx context.Context) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	UpdateSkillCategoryOrder(ctx context.Context, owner models.UserID, order []models.SkillCategory) error

	// Contact info operations
	GetContactInfo(ctx context.Context, owner models.UserID) (*models.ContactInfo, error)
	UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error

	// Project operations. UpdateProjectOrder writes only the sort_order
	// field of one project; the reorder path issues one such write per moved
	// project rather than rewriting whole records.
	ListProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error)
	ListFeaturedProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	UpdateProjectOrder(ctx context.Context, id models.ProjectID, order int) error
	DeleteProject(ctx context.Context, id models.ProjectID) error

	// Skill operations. Sort orders are category-relative.
	ListSkills(ctx context.Context, owner models.UserID) ([]*models.Skill, error)
	CreateSkill(ctx context.Context, skill *models.Skill) error
	UpdateSkill(ctx context.Context, skill *models.Skill) error
	UpdateSkillOrder(ctx context.Context, id models.SkillID, order int) error
	DeleteSkill(ctx context.Context, id models.SkillID) error

	// Migrate initializes or updates the backend schema
	Migrate(ctx context.Context) error

	// Close releases the backend connection
	Close() error
}
