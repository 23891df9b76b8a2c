package folio

// Command represents a discrete application operation with its specific
// configuration. Commands are created by Parse from the CLI arguments and
// executed by Main through a type switch on the concrete command.
type Command interface {
	// Name returns the command identifier used for routing. It must match
	// the CLI sub-command name.
	Name() string
}

// MigrateCommand initializes or updates the database schema to match the
// current data model. Safe to run repeatedly: it only creates missing
// schema elements.
//
// Behavior per backend:
//   - PostgreSQL: GORM AutoMigrate DDL for all model tables
//   - SurrealDB: no-op, tables are created on first insert
//   - in-memory: no-op
type MigrateCommand struct {
	// All configuration comes from App.Config.
}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

// RunCommand starts the HTTP server serving the public portfolio, the
// admin API, and uploaded images. The server runs until the context is
// cancelled and then shuts down gracefully.
type RunCommand struct {
	// All configuration comes from App.Config.
}

func (c *RunCommand) Name() string {
	return "run"
}
