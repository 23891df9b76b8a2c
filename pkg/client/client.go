// Package client provides a Go HTTP client for the folio API.
//
// The client mirrors the server's endpoint structure with strongly-typed
// methods: the public portfolio snapshot, owner authentication, and the
// admin CRUD and reorder operations for projects and skills. Request and
// response bodies use the same [github.com/savanth/folio/pkg/models]
// entities as the server.
//
// Authentication tokens are managed automatically: after SignUp or SignIn
// succeeds the token is attached as a Bearer Authorization header on every
// subsequent request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/savanth/folio/pkg/models"
)

// Client provides strongly-typed access to the folio REST API.
// Safe for concurrent use once authenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewClient creates a new folio API client. baseURL includes protocol and
// host without a trailing slash, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken sets the authentication token for the client
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// doRequest performs an HTTP request with proper headers
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into the target struct
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Public portfolio

// Snapshot mirrors the server's public portfolio payload.
type Snapshot struct {
	Profile     *models.Profile     `json:"profile"`
	ContactInfo *models.ContactInfo `json:"contact_info,omitempty"`
	Projects    []*models.Project   `json:"projects"`
	Featured    []*models.Project   `json:"featured"`
	SkillGroups []SkillGroup        `json:"skill_groups"`
	Placeholder bool                `json:"placeholder"`
}

// SkillGroup is one category's skills in display order.
type SkillGroup struct {
	Category models.SkillCategory `json:"category"`
	Skills   []*models.Skill      `json:"skills"`
}

// GetPortfolio fetches the latest published portfolio snapshot.
func (c *Client) GetPortfolio(ctx context.Context) (*Snapshot, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/portfolio", nil)
	if err != nil {
		return nil, err
	}

	var result Snapshot
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetPortfolioByOwner fetches one owner's portfolio snapshot.
func (c *Client) GetPortfolioByOwner(ctx context.Context, owner models.UserID) (*Snapshot, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/portfolio/%s", owner), nil)
	if err != nil {
		return nil, err
	}

	var result Snapshot
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SendContactMessage submits a visitor message through the contact form.
func (c *Client) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/contact/messages", msg)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// Profile management

// GetProfile retrieves the authenticated owner's profile
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/profile", nil)
	if err != nil {
		return nil, err
	}

	var result models.Profile
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SaveProfile upserts the authenticated owner's profile
func (c *Client) SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/admin/profile", profile)
	if err != nil {
		return nil, err
	}

	var result models.Profile
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Contact info management

// GetContactInfo retrieves the authenticated owner's contact info
func (c *Client) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/contact-info", nil)
	if err != nil {
		return nil, err
	}

	var result models.ContactInfo
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SaveContactInfo upserts the authenticated owner's contact info
func (c *Client) SaveContactInfo(ctx context.Context, info *models.ContactInfo) (*models.ContactInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/admin/contact-info", info)
	if err != nil {
		return nil, err
	}

	var result models.ContactInfo
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Project management

// ListProjects lists the owner's projects in display order
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/projects", nil)
	if err != nil {
		return nil, err
	}

	var result []models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateProject creates a new project, appended at the end of the list
func (c *Client) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/projects", project)
	if err != nil {
		return nil, err
	}

	var result models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateProject updates an existing project
func (c *Client) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/admin/projects/%s", project.ID), project)
	if err != nil {
		return nil, err
	}

	var result models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteProject deletes a project
func (c *Client) DeleteProject(ctx context.Context, id models.ProjectID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/projects/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// ReorderRequest moves the identified item from one position to another.
type ReorderRequest struct {
	ID   string `json:"id"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// ReorderProjects moves a project to a new position and returns the
// resulting order.
func (c *Client) ReorderProjects(ctx context.Context, req ReorderRequest) ([]models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/projects/reorder", req)
	if err != nil {
		return nil, err
	}

	var result []models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Skill management

// SkillList is the admin skills payload: the flat skill sequence plus the
// category display order.
type SkillList struct {
	Skills     []models.Skill         `json:"skills"`
	Categories []models.SkillCategory `json:"categories"`
}

// ListSkills lists the owner's skills with the category order
func (c *Client) ListSkills(ctx context.Context) (*SkillList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/admin/skills", nil)
	if err != nil {
		return nil, err
	}

	var result SkillList
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CreateSkill creates a new skill, appended at the end of its category
func (c *Client) CreateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/skills", skill)
	if err != nil {
		return nil, err
	}

	var result models.Skill
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateSkill updates an existing skill
func (c *Client) UpdateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/admin/skills/%s", skill.ID), skill)
	if err != nil {
		return nil, err
	}

	var result models.Skill
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteSkill deletes a skill
func (c *Client) DeleteSkill(ctx context.Context, id models.SkillID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/skills/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// ReorderSkills moves a skill to a new position and returns the resulting
// order.
func (c *Client) ReorderSkills(ctx context.Context, req ReorderRequest) ([]models.Skill, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/skills/reorder", req)
	if err != nil {
		return nil, err
	}

	var result []models.Skill
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// ReorderCategories moves a category in the display order and returns the
// resulting order.
func (c *Client) ReorderCategories(ctx context.Context, from, to int) ([]models.SkillCategory, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/skills/categories/reorder", map[string]int{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return nil, err
	}

	var result []models.SkillCategory
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}
