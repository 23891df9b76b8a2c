package folio

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
//
// # API Endpoints
//
// Public:
//
//	GET  /api/health                      - Service health status
//	GET  /api/portfolio                   - Latest published portfolio snapshot
//	GET  /api/portfolio/{ownerId}         - Snapshot for a specific owner
//	POST /api/contact/messages            - Submit a visitor contact message
//
// Authentication:
//
//	POST /api/auth/signup                 - Register new owner account
//	POST /api/auth/signin                 - Authenticate existing owner
//	POST /api/auth/signout                - End session
//	GET  /api/auth/me                     - Get current authenticated owner
//
// Admin (require a session token):
//
//	GET    /api/admin/profile             - Get the owner's profile
//	PUT    /api/admin/profile             - Save the profile (upsert)
//	GET    /api/admin/contact-info        - Get contact info
//	PUT    /api/admin/contact-info        - Save contact info (upsert)
//	GET    /api/admin/projects            - List projects in display order
//	POST   /api/admin/projects            - Create project (appended at end)
//	PUT    /api/admin/projects/{id}       - Update project
//	DELETE /api/admin/projects/{id}       - Delete project
//	POST   /api/projects/reorder          - Move a project to a new position
//	GET    /api/admin/skills              - List skills with category order
//	POST   /api/admin/skills              - Create skill (appended in its category)
//	PUT    /api/admin/skills/{id}         - Update skill
//	DELETE /api/admin/skills/{id}         - Delete skill
//	POST   /api/skills/reorder            - Move a skill to a new position
//	POST   /api/skills/categories/reorder - Move a category in the display order
//	POST   /api/uploads                   - Upload a project image
//
// Uploaded files are served from /uploads/.
//
// On graceful shutdown the server allows up to 5 seconds for in-flight
// requests to complete.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	router := a.Router()

	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().Str("addr", addr).Msg("starting folio server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// Router builds the full HTTP route table. Exposed separately from Run so
// tests can serve the API without binding a port.
func (a *App) Router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Public portfolio routes
	api.HandleFunc("/portfolio", a.handlePortfolio).Methods("GET")
	api.HandleFunc("/portfolio/{ownerId}", a.handlePortfolioByOwner).Methods("GET")
	api.HandleFunc("/contact/messages", a.handleContactMessage).Methods("POST")

	// Auth routes
	api.HandleFunc("/auth/signup", a.handleSignUp).Methods("POST")
	api.HandleFunc("/auth/signin", a.handleSignIn).Methods("POST")
	api.HandleFunc("/auth/signout", a.handleSignOut).Methods("POST")
	api.HandleFunc("/auth/me", a.handleGetCurrentUser).Methods("GET")

	// Admin routes
	api.HandleFunc("/admin/profile", a.handleGetProfile).Methods("GET")
	api.HandleFunc("/admin/profile", a.handleSaveProfile).Methods("PUT")
	api.HandleFunc("/admin/contact-info", a.handleGetContactInfo).Methods("GET")
	api.HandleFunc("/admin/contact-info", a.handleSaveContactInfo).Methods("PUT")

	api.HandleFunc("/admin/projects", a.handleListProjects).Methods("GET")
	api.HandleFunc("/admin/projects", a.handleCreateProject).Methods("POST")
	api.HandleFunc("/admin/projects/{id}", a.handleUpdateProject).Methods("PUT")
	api.HandleFunc("/admin/projects/{id}", a.handleDeleteProject).Methods("DELETE")
	api.HandleFunc("/projects/reorder", a.handleReorderProjects).Methods("POST")

	api.HandleFunc("/admin/skills", a.handleListSkills).Methods("GET")
	api.HandleFunc("/admin/skills", a.handleCreateSkill).Methods("POST")
	api.HandleFunc("/admin/skills/{id}", a.handleUpdateSkill).Methods("PUT")
	api.HandleFunc("/admin/skills/{id}", a.handleDeleteSkill).Methods("DELETE")
	api.HandleFunc("/skills/reorder", a.handleReorderSkills).Methods("POST")
	api.HandleFunc("/skills/categories/reorder", a.handleReorderCategories).Methods("POST")

	api.HandleFunc("/uploads", a.handleUpload).Methods("POST")

	// Uploaded images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.uploads.Dir()))))

	// Health check route (outside of /api prefix)
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	return router
}
