package folio

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/savanth/folio/pkg/models"
	"github.com/savanth/folio/pkg/store"
)

// Snapshot is the public, read-only view of one owner's portfolio. It is
// assembled per request from the store, never from the admin controllers,
// so public reads see settled data only.
type Snapshot struct {
	Profile     *models.Profile     `json:"profile"`
	ContactInfo *models.ContactInfo `json:"contact_info,omitempty"`
	Projects    []*models.Project   `json:"projects"`
	Featured    []*models.Project   `json:"featured"`
	SkillGroups []SkillGroup        `json:"skill_groups"`

	// Placeholder is true when no profile has been published yet and the
	// profile above is canned filler.
	Placeholder bool `json:"placeholder"`
}

// SkillGroup is one category's skills in display order. Groups follow the
// owner's persisted category order; categories without skills are omitted.
type SkillGroup struct {
	Category models.SkillCategory `json:"category"`
	Skills   []*models.Skill      `json:"skills"`
}

// placeholderProfile is rendered when an owner has not saved a profile yet,
// so the public site never serves an empty page.
func placeholderProfile() *models.Profile {
	return &models.Profile{
		WebsiteName: "Portfolio",
		HeroTitle:   "Welcome",
		HeroSubtitle: "This portfolio is still under construction. " +
			"Check back soon.",
	}
}

// buildSnapshot assembles the public view for one owner.
func (a *App) buildSnapshot(ctx context.Context, owner models.UserID) (*Snapshot, error) {
	profile, err := a.store.GetProfile(ctx, owner)
	if err != nil {
		return nil, store.NewFetchError("get profile", err)
	}

	snap := &Snapshot{}
	if profile == nil {
		snap.Profile = placeholderProfile()
		snap.Placeholder = true
	} else {
		snap.Profile = profile
	}

	info, err := a.store.GetContactInfo(ctx, owner)
	if err != nil {
		return nil, store.NewFetchError("get contact info", err)
	}
	snap.ContactInfo = info

	projects, err := a.store.ListProjects(ctx, owner)
	if err != nil {
		return nil, store.NewFetchError("list projects", err)
	}
	snap.Projects = projects

	featured, err := a.store.ListFeaturedProjects(ctx, owner)
	if err != nil {
		return nil, store.NewFetchError("list featured projects", err)
	}
	snap.Featured = featured

	skills, err := a.store.ListSkills(ctx, owner)
	if err != nil {
		return nil, store.NewFetchError("list skills", err)
	}
	snap.SkillGroups = groupSkills(skills, snap.Profile.CategoryOrder())

	return snap, nil
}

// groupSkills buckets skills by category and orders the buckets by the
// owner's category preference. Categories not in the preference list, if
// any survive in old data, are appended in the order they appear.
func groupSkills(skills []*models.Skill, order []models.SkillCategory) []SkillGroup {
	byCategory := make(map[models.SkillCategory][]*models.Skill)
	var seen []models.SkillCategory
	for _, s := range skills {
		if _, ok := byCategory[s.Category]; !ok {
			seen = append(seen, s.Category)
		}
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	groups := make([]SkillGroup, 0, len(byCategory))
	for _, c := range order {
		if bucket, ok := byCategory[c]; ok {
			groups = append(groups, SkillGroup{Category: c, Skills: bucket})
			delete(byCategory, c)
		}
	}
	for _, c := range seen {
		if bucket, ok := byCategory[c]; ok {
			groups = append(groups, SkillGroup{Category: c, Skills: bucket})
		}
	}
	return groups
}

// handlePortfolio serves the anonymous public view. With no owner in the
// URL the most recently updated profile decides whose portfolio renders.
func (a *App) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	profile, err := a.store.GetLatestProfile(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		respondJSON(w, http.StatusOK, &Snapshot{
			Profile:     placeholderProfile(),
			Projects:    []*models.Project{},
			SkillGroups: []SkillGroup{},
			Placeholder: true,
		})
		return
	}

	snap, err := a.buildSnapshot(r.Context(), profile.OwnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (a *App) handlePortfolioByOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := models.ParseUserID(mux.Vars(r)["ownerId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	snap, err := a.buildSnapshot(r.Context(), owner)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
