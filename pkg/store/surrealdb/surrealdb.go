// Package surrealdb provides the SurrealDB implementation of the
// [github.com/savanth/folio/pkg/store.Store] interface using native SurrealQL.
//
// # CBOR Marshaling Strategy
//
// The implementation uses the surrealcbor codec to ensure proper data
// serialization between Go types and SurrealDB's internal format:
//
//   - Model structs marshal directly to SurrealDB records
//   - Typed IDs ([github.com/savanth/folio/pkg/models.UserID],
//     [github.com/savanth/folio/pkg/models.ProjectID], etc.) automatically
//     convert to SurrealDB RecordIDs through their MarshalCBOR methods
//   - time.Time values use SurrealDB's native datetime format
//
// Without the custom codec, time.Time values marshal incorrectly and
// RecordIDs are not recognized, causing queries to fail at runtime.
//
// # Query Safety
//
// All queries use the $param syntax with a vars map. Never build queries
// with fmt.Sprintf or string concatenation over user-provided values.
//
// # Order Writes
//
// UpdateProjectOrder and UpdateSkillOrder use Merge so that a reorder pass
// touches only the sort_order field. The reorder path issues one write per
// moved record and must not clobber fields written by a concurrent edit.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// SurrealStore implements the Store interface using SurrealDB with the
// surrealcbor codec for proper time.Time and RecordID handling.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// NewSurrealStore creates a new SurrealDB store.
//
// The connection is configured manually rather than through
// FromEndpointURLString so the surrealcbor codec can be installed as the
// marshaler and unmarshaler.
func NewSurrealStore(wsURL, namespace, database, username, password string) (store.Store, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	// The default codec mangles time.Time and typed IDs.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// Migrate is a no-op. SurrealDB creates tables automatically when data is
// first inserted, so no schema commands are required.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	return nil
}

// Close closes the database connection
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the driver's zero-result errors to nil so callers
// get the (nil, nil) missing-record contract.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

// User operations

func (s *SurrealStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	_, err := surrealdb.Create[models.User](ctx, s.db, "users", user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	rid := id.RecordID()
	user, err := surrealdb.Select[models.User](ctx, s.db, rid)
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SurrealStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT * FROM users WHERE email = $email"
	params := map[string]any{
		"email": email,
	}
	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		return &(*result)[0].Result[0], nil
	}
	return nil, nil
}

// Profile operations

func (s *SurrealStore) GetProfile(ctx context.Context, owner models.UserID) (*models.Profile, error) {
	query := "SELECT * FROM profiles WHERE owner_id = $owner"
	params := map[string]any{
		"owner": owner, // UserID marshals to a RecordID automatically
	}
	result, err := surrealdb.Query[[]models.Profile](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		return &(*result)[0].Result[0], nil
	}
	return nil, nil
}

func (s *SurrealStore) GetLatestProfile(ctx context.Context) (*models.Profile, error) {
	query := "SELECT * FROM profiles ORDER BY updated_at DESC LIMIT 1"
	result, err := surrealdb.Query[[]models.Profile](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest profile: %w", err)
	}

	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		return &(*result)[0].Result[0], nil
	}
	return nil, nil
}

func (s *SurrealStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	existing, err := s.GetProfile(ctx, profile.OwnerID)
	if err != nil {
		return err
	}

	profile.UpdatedAt = time.Now()
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		rid := profile.ID.RecordID()
		if _, err := surrealdb.Update[models.Profile](ctx, s.db, rid, profile); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	}

	if profile.ID.IsZero() {
		profile.ID = models.NewProfileID()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if _, err := surrealdb.Create[models.Profile](ctx, s.db, "profiles", profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *SurrealStore) UpdateSkillCategoryOrder(ctx context.Context, owner models.UserID, order []models.SkillCategory) error {
	existing, err := s.GetProfile(ctx, owner)
	if err != nil {
		return err
	}
	if existing == nil {
		// First category reorder before the profile form was ever saved.
		profile := &models.Profile{
			OwnerID:            owner,
			SkillCategoryOrder: models.CategoryList(order),
		}
		return s.UpsertProfile(ctx, profile)
	}

	rid := existing.ID.RecordID()
	_, err = surrealdb.Merge[models.Profile](ctx, s.db, rid, map[string]any{
		"skill_category_order": order,
		"updated_at":           time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to update skill category order: %w", err)
	}
	return nil
}

// Contact info operations

func (s *SurrealStore) GetContactInfo(ctx context.Context, owner models.UserID) (*models.ContactInfo, error) {
	query := "SELECT * FROM contact_infos WHERE owner_id = $owner"
	params := map[string]any{
		"owner": owner,
	}
	result, err := surrealdb.Query[[]models.ContactInfo](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact info: %w", err)
	}

	if result != nil && len(*result) > 0 && len((*result)[0].Result) > 0 {
		return &(*result)[0].Result[0], nil
	}
	return nil, nil
}

func (s *SurrealStore) UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error {
	existing, err := s.GetContactInfo(ctx, info.OwnerID)
	if err != nil {
		return err
	}

	info.UpdatedAt = time.Now()
	if existing != nil {
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
		rid := info.ID.RecordID()
		if _, err := surrealdb.Update[models.ContactInfo](ctx, s.db, rid, info); err != nil {
			return fmt.Errorf("failed to update contact info: %w", err)
		}
		return nil
	}

	if info.ID.IsZero() {
		info.ID = models.NewContactInfoID()
	}
	if info.CreatedAt.IsZero() {
		info.CreatedAt = time.Now()
	}
	if _, err := surrealdb.Create[models.ContactInfo](ctx, s.db, "contact_infos", info); err != nil {
		return fmt.Errorf("failed to create contact info: %w", err)
	}
	return nil
}

// Project operations

func (s *SurrealStore) ListProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	query := "SELECT * FROM projects WHERE owner_id = $owner ORDER BY sort_order"
	params := map[string]any{
		"owner": owner,
	}
	result, err := surrealdb.Query[[]models.Project](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []*models.Project
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			projects = append(projects, &(*result)[0].Result[i])
		}
	}
	return projects, nil
}

func (s *SurrealStore) ListFeaturedProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	query := "SELECT * FROM projects WHERE owner_id = $owner AND is_featured = true ORDER BY sort_order"
	params := map[string]any{
		"owner": owner,
	}
	result, err := surrealdb.Query[[]models.Project](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured projects: %w", err)
	}

	var projects []*models.Project
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			projects = append(projects, &(*result)[0].Result[i])
		}
	}
	return projects, nil
}

func (s *SurrealStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = models.NewProjectID()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = time.Now()
	}

	_, err := surrealdb.Create[models.Project](ctx, s.db, "projects", project)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (s *SurrealStore) UpdateProject(ctx context.Context, project *models.Project) error {
	rid := project.ID.RecordID()
	project.UpdatedAt = time.Now()

	_, err := surrealdb.Update[models.Project](ctx, s.db, rid, project)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (s *SurrealStore) UpdateProjectOrder(ctx context.Context, id models.ProjectID, order int) error {
	rid := id.RecordID()
	_, err := surrealdb.Merge[models.Project](ctx, s.db, rid, map[string]any{
		"sort_order": order,
		"updated_at": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to update project order: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	rid := id.RecordID()
	_, err := surrealdb.Delete[models.Project](ctx, s.db, rid)
	return err
}

// Skill operations

func (s *SurrealStore) ListSkills(ctx context.Context, owner models.UserID) ([]*models.Skill, error) {
	query := "SELECT * FROM skills WHERE owner_id = $owner ORDER BY category, sort_order"
	params := map[string]any{
		"owner": owner,
	}
	result, err := surrealdb.Query[[]models.Skill](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	var skills []*models.Skill
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			skills = append(skills, &(*result)[0].Result[i])
		}
	}
	return skills, nil
}

func (s *SurrealStore) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if skill.ID.IsZero() {
		skill.ID = models.NewSkillID()
	}
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = time.Now()
	}
	if skill.UpdatedAt.IsZero() {
		skill.UpdatedAt = time.Now()
	}

	_, err := surrealdb.Create[models.Skill](ctx, s.db, "skills", skill)
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

func (s *SurrealStore) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	rid := skill.ID.RecordID()
	skill.UpdatedAt = time.Now()

	_, err := surrealdb.Update[models.Skill](ctx, s.db, rid, skill)
	if err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return nil
}

func (s *SurrealStore) UpdateSkillOrder(ctx context.Context, id models.SkillID, order int) error {
	rid := id.RecordID()
	_, err := surrealdb.Merge[models.Skill](ctx, s.db, rid, map[string]any{
		"sort_order": order,
		"updated_at": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to update skill order: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteSkill(ctx context.Context, id models.SkillID) error {
	rid := id.RecordID()
	_, err := surrealdb.Delete[models.Skill](ctx, s.db, rid)
	return err
}
