package store

import (
	"context"
	"fmt"

	"github.com/savanth/folio/pkg/models"
)

// ReadOnlyStore wraps a Store and rejects write operations when the
// application is in read-only mode.
//
// The read-only state is determined dynamically by the isReadOnly function,
// so the application can toggle between read-write and read-only modes
// without recreating the store instance. Read operations always pass through.
//
// Used for maintenance windows: the public site keeps rendering while the
// admin surface is frozen.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// checkReadOnly returns an error if the store is in read-only mode
func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: application is in read-only mode")
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateUser(ctx, user)
}

func (r *ReadOnlyStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpsertProfile(ctx, profile)
}

func (r *ReadOnlyStore) UpdateSkillCategoryOrder(ctx context.Context, owner models.UserID, order []models.SkillCategory) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateSkillCategoryOrder(ctx, owner, order)
}

func (r *ReadOnlyStore) UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpsertContactInfo(ctx, info)
}

func (r *ReadOnlyStore) CreateProject(ctx context.Context, project *models.Project) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateProject(ctx, project)
}

func (r *ReadOnlyStore) UpdateProject(ctx context.Context, project *models.Project) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateProject(ctx, project)
}

func (r *ReadOnlyStore) UpdateProjectOrder(ctx context.Context, id models.ProjectID, order int) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateProjectOrder(ctx, id, order)
}

func (r *ReadOnlyStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteProject(ctx, id)
}

func (r *ReadOnlyStore) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateSkill(ctx, skill)
}

func (r *ReadOnlyStore) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateSkill(ctx, skill)
}

func (r *ReadOnlyStore) UpdateSkillOrder(ctx context.Context, id models.SkillID, order int) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateSkillOrder(ctx, id, order)
}

func (r *ReadOnlyStore) DeleteSkill(ctx context.Context, id models.SkillID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteSkill(ctx, id)
}

func (r *ReadOnlyStore) Migrate(ctx context.Context) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.Migrate(ctx)
}

// Read operations pass through without checks via the embedded Store
