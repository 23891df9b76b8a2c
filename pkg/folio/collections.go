package folio

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/savanth/folio/pkg/collection"
	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// projectBackend adapts the store's project operations to the collection
// controller. Store errors are classified here: reads become FetchError,
// writes become PersistError.
type projectBackend struct {
	store store.Store
	owner models.UserID
}

func (b projectBackend) List(ctx context.Context) ([]models.Project, error) {
	rows, err := b.store.ListProjects(ctx, b.owner)
	if err != nil {
		return nil, store.NewFetchError("list projects", err)
	}
	out := make([]models.Project, len(rows))
	for i, p := range rows {
		out[i] = *p
	}
	return out, nil
}

func (b projectBackend) Insert(ctx context.Context, item models.Project) (models.Project, error) {
	item.OwnerID = b.owner
	if err := b.store.CreateProject(ctx, &item); err != nil {
		return models.Project{}, store.NewPersistError("create project", err)
	}
	return item, nil
}

func (b projectBackend) Update(ctx context.Context, item models.Project) (models.Project, error) {
	item.OwnerID = b.owner
	if err := b.store.UpdateProject(ctx, &item); err != nil {
		return models.Project{}, store.NewPersistError("update project", err)
	}
	return item, nil
}

func (b projectBackend) UpdateOrder(ctx context.Context, key string, order int) error {
	id, err := models.ParseProjectID(key)
	if err != nil {
		return store.NewPersistError("update project order", err)
	}
	if err := b.store.UpdateProjectOrder(ctx, id, order); err != nil {
		return store.NewPersistError("update project order", err)
	}
	return nil
}

func (b projectBackend) Delete(ctx context.Context, key string) error {
	id, err := models.ParseProjectID(key)
	if err != nil {
		return store.NewPersistError("delete project", err)
	}
	if err := b.store.DeleteProject(ctx, id); err != nil {
		return store.NewPersistError("delete project", err)
	}
	return nil
}

// skillBackend is the skill counterpart of projectBackend. Skills carry
// their category as the collection scope, so positions are per category.
type skillBackend struct {
	store store.Store
	owner models.UserID
}

func (b skillBackend) List(ctx context.Context) ([]models.Skill, error) {
	rows, err := b.store.ListSkills(ctx, b.owner)
	if err != nil {
		return nil, store.NewFetchError("list skills", err)
	}
	out := make([]models.Skill, len(rows))
	for i, s := range rows {
		out[i] = *s
	}
	return out, nil
}

func (b skillBackend) Insert(ctx context.Context, item models.Skill) (models.Skill, error) {
	item.OwnerID = b.owner
	if err := b.store.CreateSkill(ctx, &item); err != nil {
		return models.Skill{}, store.NewPersistError("create skill", err)
	}
	return item, nil
}

func (b skillBackend) Update(ctx context.Context, item models.Skill) (models.Skill, error) {
	item.OwnerID = b.owner
	if err := b.store.UpdateSkill(ctx, &item); err != nil {
		return models.Skill{}, store.NewPersistError("update skill", err)
	}
	return item, nil
}

func (b skillBackend) UpdateOrder(ctx context.Context, key string, order int) error {
	id, err := models.ParseSkillID(key)
	if err != nil {
		return store.NewPersistError("update skill order", err)
	}
	if err := b.store.UpdateSkillOrder(ctx, id, order); err != nil {
		return store.NewPersistError("update skill order", err)
	}
	return nil
}

func (b skillBackend) Delete(ctx context.Context, key string) error {
	id, err := models.ParseSkillID(key)
	if err != nil {
		return store.NewPersistError("delete skill", err)
	}
	if err := b.store.DeleteSkill(ctx, id); err != nil {
		return store.NewPersistError("delete skill", err)
	}
	return nil
}

// OwnerBoard bundles one owner's project and skill controllers together
// with the persisted category display order. Handlers go through the board
// so the controllers stay the single source of truth for ordering.
type OwnerBoard struct {
	store store.Store
	owner models.UserID
	log   zerolog.Logger

	Projects *collection.Controller[models.Project]
	Skills   *collection.Controller[models.Skill]

	mu         sync.Mutex
	categories []models.SkillCategory
	loaded     bool
}

// NewOwnerBoard creates the controllers for one owner. Nothing is fetched
// until Load.
func NewOwnerBoard(st store.Store, owner models.UserID, log zerolog.Logger) *OwnerBoard {
	blog := log.With().Stringer("owner", owner).Logger()
	return &OwnerBoard{
		store: st,
		owner: owner,
		log:   blog,
		Projects: collection.NewController[models.Project](
			projectBackend{store: st, owner: owner},
			func(p models.Project) error { return models.Validate(p) },
			blog.With().Str("collection", "projects").Logger(),
		),
		Skills: collection.NewController[models.Skill](
			skillBackend{store: st, owner: owner},
			func(s models.Skill) error { return models.Validate(s) },
			blog.With().Str("collection", "skills").Logger(),
		),
	}
}

// Load fetches both collections and the owner's category order. Safe to
// call again to refresh; EnsureLoaded is the usual entry point.
func (b *OwnerBoard) Load(ctx context.Context) error {
	if err := b.Projects.Load(ctx); err != nil {
		return err
	}
	if err := b.Skills.Load(ctx); err != nil {
		return err
	}
	if err := b.loadCategories(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	b.loaded = true
	b.mu.Unlock()
	return nil
}

// EnsureLoaded loads once and is a no-op afterwards.
func (b *OwnerBoard) EnsureLoaded(ctx context.Context) error {
	b.mu.Lock()
	loaded := b.loaded
	b.mu.Unlock()
	if loaded {
		return nil
	}
	return b.Load(ctx)
}

func (b *OwnerBoard) loadCategories(ctx context.Context) error {
	profile, err := b.store.GetProfile(ctx, b.owner)
	if err != nil {
		return store.NewFetchError("get profile", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if profile != nil {
		b.categories = profile.CategoryOrder()
	} else {
		b.categories = models.DefaultCategoryOrder()
	}
	return nil
}

// Categories returns a copy of the current category display order.
func (b *OwnerBoard) Categories() []models.SkillCategory {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.SkillCategory, len(b.categories))
	copy(out, b.categories)
	return out
}

// ReorderCategories moves the category at index from to index to and
// persists the full order. On a write failure the in-memory order is
// restored from the profile, mirroring the item-level rollback behavior.
func (b *OwnerBoard) ReorderCategories(ctx context.Context, from, to int) error {
	b.mu.Lock()
	if from < 0 || from >= len(b.categories) || to < 0 || to >= len(b.categories) {
		b.log.Warn().Int("from", from).Int("to", to).Int("len", len(b.categories)).
			Msg("category reorder with out-of-range index dropped")
		b.mu.Unlock()
		return nil
	}
	if from == to {
		b.mu.Unlock()
		return nil
	}
	b.categories = collection.Splice(b.categories, from, to)
	order := make([]models.SkillCategory, len(b.categories))
	copy(order, b.categories)
	b.mu.Unlock()

	if err := b.store.UpdateSkillCategoryOrder(ctx, b.owner, order); err != nil {
		if rerr := b.loadCategories(ctx); rerr != nil {
			b.log.Error().Err(rerr).Msg("category order rollback reload failed")
		}
		return fmt.Errorf("persist category order: %w", store.NewPersistError("update category order", err))
	}
	return nil
}
