package folio

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/savanth/folio/pkg/client"
	"github.com/savanth/folio/pkg/models"
)

// Sessions are kept in memory on the App. A multi-instance deployment
// would need a shared session store instead.

// generateToken creates a 32-byte random token encoded as hex, giving 256
// bits of entropy for session identification.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// getTokenFromHeader extracts the token from the Authorization header,
// stripping a "Bearer " prefix if present.
func getTokenFromHeader(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const bearerPrefix = "Bearer "
	if len(auth) > len(bearerPrefix) && auth[:len(bearerPrefix)] == bearerPrefix {
		return auth[len(bearerPrefix):]
	}
	return auth
}

// currentUser resolves the request's session token to a user.
func (a *App) currentUser(r *http.Request) (*models.User, bool) {
	token := getTokenFromHeader(r)
	if token == "" {
		return nil, false
	}
	a.sessionMu.RLock()
	user, ok := a.sessions[token]
	a.sessionMu.RUnlock()
	return user, ok
}

// handleSignUp registers a new owner account and returns a session token,
// so the client is authenticated immediately after signup.
func (a *App) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req client.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := models.Validate(*user); err != nil {
		writeError(w, err)
		return
	}

	existing, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}

	if err := a.store.CreateUser(r.Context(), user); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := generateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.sessionMu.Lock()
	a.sessions[token] = user
	a.sessionMu.Unlock()

	respondJSON(w, http.StatusOK, client.AuthResponse{
		Token: token,
		User:  user,
	})
}

// handleSignIn authenticates an existing owner.
//
// TODO: store a bcrypt hash on the user record and verify it here. Until
// then any password is accepted for a known email, matching the demo
// deployment behind the reverse proxy's basic auth.
func (a *App) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req client.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := generateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.sessionMu.Lock()
	a.sessions[token] = user
	a.sessionMu.Unlock()

	respondJSON(w, http.StatusOK, client.AuthResponse{
		Token: token,
		User:  user,
	})
}

// handleSignOut ends the session
func (a *App) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := getTokenFromHeader(r)
	if token != "" {
		a.sessionMu.Lock()
		delete(a.sessions, token)
		a.sessionMu.Unlock()
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// handleGetCurrentUser returns the authenticated user
func (a *App) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
