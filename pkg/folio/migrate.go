package folio

import (
	"context"
	"fmt"
)

// Migrate brings the active store's schema up to date.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Msg("running schema migration")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("schema migration: %w", err)
	}
	a.log.Info().Msg("schema migration complete")
	return nil
}
