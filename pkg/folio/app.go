// Package folio wires the portfolio application together: configuration,
// store selection, the HTTP surface, and the per-owner ordered collection
// controllers for projects and skills.
package folio

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/savanth/folio/pkg/mailer"
	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/storage"
	"github.com/savanth/folio/pkg/store"
	"github.com/savanth/folio/pkg/store/memory"
	"github.com/savanth/folio/pkg/store/postgres"
	"github.com/savanth/folio/pkg/store/surrealdb"
)

// Config holds application configuration.
type Config struct {
	// Database configuration
	PostgresDSN   string
	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string

	// Mode configuration
	PostgresOnly bool
	SurrealOnly  bool
	InMemory     bool
	ReadOnly     bool // When true, all write operations are rejected

	// Server configuration
	ServerPort string

	// UploadDir is where project images land on disk. Served at /uploads/.
	UploadDir string
}

// App holds the application state: the store, session registry, upload
// storage, and one set of collection controllers per authenticated owner.
type App struct {
	store    store.Store
	config   *Config
	log      zerolog.Logger
	readOnly bool

	// In-memory session store. A multi-instance deployment would need
	// Redis or similar here.
	sessions  map[string]*models.User
	sessionMu sync.RWMutex

	// Per-owner controllers, created lazily on first admin request.
	boards  map[models.UserID]*OwnerBoard
	boardMu sync.Mutex

	uploads *storage.FileStore
	mailer  mailer.Mailer
}

// New creates a new application instance.
func New(config *Config) (*App, error) {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var appStore store.Store
	var err error

	switch {
	case config.InMemory:
		appStore = memory.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	case config.SurrealOnly:
		appStore, err = surrealdb.NewSurrealStore(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		log.Info().Str("url", config.SurrealDBURL).Msg("connected to SurrealDB")
	default:
		appStore, err = postgres.NewPostgresStore(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("connected to PostgreSQL")
	}

	uploads, err := storage.NewFileStore(config.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	app := &App{
		config:   config,
		log:      log,
		readOnly: config.ReadOnly,
		sessions: make(map[string]*models.User),
		boards:   make(map[models.UserID]*OwnerBoard),
		uploads:  uploads,
		mailer:   mailer.NewLogMailer(log),
	}

	// Wrap the store with read-only protection
	app.store = store.NewReadOnlyStore(appStore, app.IsReadOnly)

	return app, nil
}

// Close closes the application and its resources
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store (useful for testing)
func (a *App) Store() store.Store {
	return a.store
}

// SetReadOnly toggles the application's read-only mode at runtime. Writes
// are rejected at the store wrapper, so the toggle takes effect without a
// restart. Used for maintenance windows and backup runs.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly = readOnly
	a.log.Info().Bool("read_only", readOnly).Msg("read-only mode changed")
}

// IsReadOnly reports whether the application is currently in read-only mode.
// Checked by the ReadOnlyStore wrapper on every write, so it must stay cheap.
func (a *App) IsReadOnly() bool {
	return a.readOnly
}

// board returns the collection controllers for the given owner, creating
// them on first use. The board loads lazily on first access by a handler.
func (a *App) board(owner models.UserID) *OwnerBoard {
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	b, ok := a.boards[owner]
	if !ok {
		b = NewOwnerBoard(a.store, owner, a.log)
		a.boards[owner] = b
	}
	return b
}

// getEnv retrieves an environment variable value with a fallback default.
// Empty values are treated the same as unset, which matters in container
// environments where empty variables get set by accident.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
