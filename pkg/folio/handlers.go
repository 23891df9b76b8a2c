package folio

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/savanth/folio/pkg/models"
)

// respondJSON sends a JSON response with the given status code. A nil
// payload writes only the status line and headers.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends a standardized JSON error response:
//
//	{"error": "error message here"}
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeError maps application errors to HTTP responses. Validation failures
// become 400 with the per-field violations attached; everything else is a
// 500 with the error text.
func writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// handleHealth reports service liveness. Used by load balancer checks, so
// it always returns 200 when the process can respond.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"read_only": a.IsReadOnly(),
		"time":      time.Now().Unix(),
	})
}

// requireOwner authenticates the request and returns the caller's board
// with its collections loaded. On failure the response has already been
// written and the bool is false.
func (a *App) requireOwner(w http.ResponseWriter, r *http.Request) (*models.User, *OwnerBoard, bool) {
	user, ok := a.currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, nil, false
	}
	board := a.board(user.ID)
	if err := board.EnsureLoaded(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return user, board, true
}

// Profile handlers

func (a *App) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, _, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	profile, err := a.store.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (a *App) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	user, _, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.saveProfile(r.Context(), user.ID, &profile); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Contact info handlers

func (a *App) handleGetContactInfo(w http.ResponseWriter, r *http.Request) {
	user, _, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	info, err := a.store.GetContactInfo(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if info == nil {
		respondError(w, http.StatusNotFound, "Contact info not found")
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (a *App) handleSaveContactInfo(w http.ResponseWriter, r *http.Request) {
	user, _, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var info models.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.saveContactInfo(r.Context(), user.ID, &info); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Project handlers

func (a *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, board.Projects.Items())
}

func (a *App) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := board.Projects.Create(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	project.ID = id

	updated, err := board.Projects.Update(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (a *App) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := board.Projects.Delete(r.Context(), id.String()); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// reorderRequest is the payload for item move endpoints. ID guards against
// stale client views: the move is dropped if the item at From no longer
// matches.
type reorderRequest struct {
	ID   string `json:"id"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

func (a *App) handleReorderProjects(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := board.Projects.Reorder(r.Context(), req.ID, req.From, req.To); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, board.Projects.Items())
}

// Skill handlers

func (a *App) handleListSkills(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"skills":     board.Skills.Items(),
		"categories": board.Categories(),
	})
}

func (a *App) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var skill models.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := board.Skills.Create(r.Context(), skill)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	id, err := models.ParseSkillID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid skill ID")
		return
	}

	var skill models.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	skill.ID = id

	updated, err := board.Skills.Update(r.Context(), skill)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (a *App) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	id, err := models.ParseSkillID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid skill ID")
		return
	}

	if err := board.Skills.Delete(r.Context(), id.String()); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleReorderSkills(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := board.Skills.Reorder(r.Context(), req.ID, req.From, req.To); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, board.Skills.Items())
}

func (a *App) handleReorderCategories(w http.ResponseWriter, r *http.Request) {
	_, board, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := board.ReorderCategories(r.Context(), req.From, req.To); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, board.Categories())
}

// Contact message handler

func (a *App) handleContactMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := models.Validate(msg); err != nil {
		writeError(w, err)
		return
	}

	if err := a.mailer.Send(r.Context(), msg); err != nil {
		a.log.Error().Err(err).Msg("contact message delivery failed")
		respondError(w, http.StatusInternalServerError, "Failed to deliver message")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Upload handler

// maxUploadSize caps project image uploads at 10 MB.
const maxUploadSize = 10 << 20

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	_, _, ok := a.requireOwner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "File too large: max "+strconv.Itoa(maxUploadSize>>20)+" MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	url, err := a.uploads.Save(header.Filename, file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
