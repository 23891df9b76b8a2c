// Package postgres provides the PostgreSQL implementation of the
// [github.com/savanth/folio/pkg/store.Store] interface using GORM.
//
// GORM handles SQL generation, relationship management and schema migration
// through AutoMigrate. The typed IDs in [github.com/savanth/folio/pkg/models]
// implement driver.Valuer and sql.Scanner, so they map to uuid columns
// without conversion code here.
//
// Order writes use targeted single-column updates rather than full-record
// saves: the reorder path issues one UPDATE per moved record and must not
// clobber unrelated fields that another request may be writing.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Migrate creates or updates the schema using GORM's AutoMigrate. Safe to
// run repeatedly; it only adds missing schema elements.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ContactInfo{},
		&models.Project{},
		&models.Skill{},
	)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// User operations

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *PostgresStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Profile operations

func (s *PostgresStore) GetProfile(ctx context.Context, owner models.UserID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("owner_id = ?", owner).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *PostgresStore) GetLatestProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Order("updated_at DESC").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	existing, err := s.GetProfile(ctx, profile.OwnerID)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return s.db.WithContext(ctx).Save(profile).Error
	}
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s *PostgresStore) UpdateSkillCategoryOrder(ctx context.Context, owner models.UserID, order []models.SkillCategory) error {
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
		return s.db.WithContext(ctx).Create(profile).Error
	}
	return s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("owner_id = ?", owner).
		Update("skill_category_order", models.CategoryList(order)).Error
}

// Contact info operations

func (s *PostgresStore) GetContactInfo(ctx context.Context, owner models.UserID) (*models.ContactInfo, error) {
	var info models.ContactInfo
	err := s.db.WithContext(ctx).Where("owner_id = ?", owner).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (s *PostgresStore) UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error {
	existing, err := s.GetContactInfo(ctx, info.OwnerID)
	if err != nil {
		return err
	}
	if existing != nil {
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
		return s.db.WithContext(ctx).Save(info).Error
	}
	return s.db.WithContext(ctx).Create(info).Error
}

// Project operations

func (s *PostgresStore) ListProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.db.WithContext(ctx).Where("owner_id = ?", owner).Order("sort_order").Find(&projects).Error
	return projects, err
}

func (s *PostgresStore) ListFeaturedProjects(ctx context.Context, owner models.UserID) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_featured = ?", owner, true).
		Order("sort_order").Find(&projects).Error
	return projects, err
}

func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *PostgresStore) UpdateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Save(project).Error
}

func (s *PostgresStore) UpdateProjectOrder(ctx context.Context, id models.ProjectID, order int) error {
	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("sort_order", order).Error
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	return s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

// Skill operations

func (s *PostgresStore) ListSkills(ctx context.Context, owner models.UserID) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := s.db.WithContext(ctx).Where("owner_id = ?", owner).
		Order("category").Order("sort_order").Find(&skills).Error
	return skills, err
}

func (s *PostgresStore) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return s.db.WithContext(ctx).Create(skill).Error
}

func (s *PostgresStore) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	return s.db.WithContext(ctx).Save(skill).Error
}

func (s *PostgresStore) UpdateSkillOrder(ctx context.Context, id models.SkillID, order int) error {
	return s.db.WithContext(ctx).Model(&models.Skill{}).
		Where("id = ?", id).
		Update("sort_order", order).Error
}

func (s *PostgresStore) DeleteSkill(ctx context.Context, id models.SkillID) error {
	return s.db.WithContext(ctx).Delete(&models.Skill{}, "id = ?", id).Error
}
