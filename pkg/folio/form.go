package folio

import (
	"context"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// Form persistence follows upsert-by-owner semantics: the owner is the
// identity, so saving always lands on the same record and the last writer
// wins. Validation runs before any store call; a validation failure means
// zero writes.

func (a *App) saveProfile(ctx context.Context, owner models.UserID, profile *models.Profile) error {
	profile.OwnerID = owner
	if err := models.Validate(*profile); err != nil {
		return err
	}
	if err := a.store.UpsertProfile(ctx, profile); err != nil {
		return store.NewPersistError("save profile", err)
	}
	return nil
}

func (a *App) saveContactInfo(ctx context.Context, owner models.UserID, info *models.ContactInfo) error {
	info.OwnerID = owner
	if err := models.Validate(*info); err != nil {
		return err
	}
	if err := a.store.UpsertContactInfo(ctx, info); err != nil {
		return store.NewPersistError("save contact info", err)
	}
	return nil
}
