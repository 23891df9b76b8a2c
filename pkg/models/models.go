package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// SkillCategory groups skills into the sections shown on the portfolio page.
// Each category holds an independently ordered list of skills.
type SkillCategory string

const (
	SkillCategoryFrontend  SkillCategory = "frontend"
	SkillCategoryBackend   SkillCategory = "backend"
	SkillCategoryFramework SkillCategory = "framework"
	SkillCategoryDatabase  SkillCategory = "database"
	SkillCategoryAIML      SkillCategory = "aiml"
	SkillCategoryTools     SkillCategory = "tools"
)

// DefaultCategoryOrder is the display order used until the owner saves their own.
func DefaultCategoryOrder() []SkillCategory {
	return []SkillCategory{
		SkillCategoryFrontend,
		SkillCategoryBackend,
		SkillCategoryFramework,
		SkillCategoryDatabase,
		SkillCategoryAIML,
		SkillCategoryTools,
	}
}

// StringList stores a list of strings as a single column across both database
// backends: JSONB in PostgreSQL and a native array in SurrealDB. Used for
// project technology tags and journey technologies, where elements are opaque
// labels and never queried individually.
type StringList []string

// Value implements the driver.Valuer interface for database storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		bytes = []byte(value.(string))
	}
	return json.Unmarshal(bytes, l)
}

// CategoryList stores the owner's skill category display order. Same storage
// strategy as StringList; kept as a distinct type so the category ordering
// survives round trips without casts in store code.
type CategoryList []SkillCategory

func (l CategoryList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *CategoryList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		bytes = []byte(value.(string))
	}
	return json.Unmarshal(bytes, l)
}

// User represents an account that owns portfolio content
type User struct {
	ID        UserID         `gorm:"type:uuid;primary_key" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email" validate:"required,email"`
	Name      string         `gorm:"not null" json:"name" validate:"required"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook to generate ID if not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

// Profile holds the site copy for one owner: hero section, about section,
// journey section and the persisted skill category order. One row per owner,
// written with upsert semantics (last writer wins).
type Profile struct {
	ID                  ProfileID    `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID             UserID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	WebsiteName         string       `gorm:"not null" json:"website_name" validate:"required"`
	HeroTitle           string       `json:"hero_title" validate:"required"`
	HeroSubtitle        string       `json:"hero_subtitle"`
	HeroImageURL        string       `json:"hero_image_url,omitempty"`
	AboutTitle          string       `json:"about_title"`
	AboutContent        string       `gorm:"type:text" json:"about_content"`
	ProfileImageURL     string       `json:"profile_image_url,omitempty"`
	JourneyTitle        string       `json:"journey_title"`
	JourneyContent      string       `gorm:"type:text" json:"journey_content"`
	JourneyTechnologies StringList   `gorm:"type:jsonb" json:"journey_technologies,omitempty"`
	SkillCategoryOrder  CategoryList `gorm:"type:jsonb" json:"skill_category_order,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewProfileID()
	}
	return nil
}

// CategoryOrder returns the persisted category order, falling back to the
// default when the owner has never reordered categories.
func (p *Profile) CategoryOrder() []SkillCategory {
	if p == nil || len(p.SkillCategoryOrder) == 0 {
		return DefaultCategoryOrder()
	}
	return append([]SkillCategory(nil), p.SkillCategoryOrder...)
}

// ContactInfo holds the contact section links for one owner.
// One row per owner, upsert semantics like Profile.
type ContactInfo struct {
	ID          ContactInfoID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     UserID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Email       string        `json:"email" validate:"omitempty,email"`
	Phone       string        `json:"phone,omitempty"`
	Location    string        `json:"location,omitempty"`
	LinkedinURL string        `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL   string        `json:"github_url,omitempty" validate:"omitempty,url"`
	TwitterURL  string        `json:"twitter_url,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (c *ContactInfo) BeforeCreate(tx *gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewContactInfoID()
	}
	return nil
}

// Project is a portfolio entry in the owner's ordered project list.
// SortOrder is the zero-based position within the owner's list; the
// collection controller keeps it dense across reorders.
type Project struct {
	ID           ProjectID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      UserID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title        string         `gorm:"not null" json:"title" validate:"required"`
	Description  string         `gorm:"type:text" json:"description"`
	ImageURL     string         `json:"image_url,omitempty"`
	Technologies StringList     `gorm:"type:jsonb" json:"technologies,omitempty"`
	GithubURL    string         `json:"github_url,omitempty" validate:"omitempty,url"`
	DemoURL      string         `json:"demo_url,omitempty" validate:"omitempty,url"`
	SortOrder    int            `gorm:"not null" json:"sort_order"`
	IsFeatured   bool           `json:"is_featured"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook to generate ID if not set
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewProjectID()
	}
	return nil
}

// Key, Scope, Order and WithOrder let Project flow through the ordered
// collection controller. Projects form a single flat list per owner.
func (p Project) Key() string   { return p.ID.String() }
func (p Project) Scope() string { return "" }
func (p Project) Order() int    { return p.SortOrder }
func (p Project) WithOrder(n int) Project {
	p.SortOrder = n
	return p
}

// Skill is a single skill bar. SortOrder is the zero-based position within
// the skill's category, not within the full list.
type Skill struct {
	ID         SkillID        `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    UserID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name       string         `gorm:"not null" json:"name" validate:"required"`
	Category   SkillCategory  `gorm:"not null" json:"category" validate:"required,oneof=frontend backend framework database aiml tools"`
	Percentage int            `gorm:"not null" json:"percentage" validate:"min=0,max=100"`
	SortOrder  int            `gorm:"not null" json:"sort_order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook to generate ID if not set
func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID.IsZero() {
		s.ID = NewSkillID()
	}
	return nil
}

// Key, Scope, Order and WithOrder let Skill flow through the ordered
// collection controller. Skills are scoped by category, so reorders and
// positions are always category-relative.
func (s Skill) Key() string   { return s.ID.String() }
func (s Skill) Scope() string { return string(s.Category) }
func (s Skill) Order() int    { return s.SortOrder }
func (s Skill) WithOrder(n int) Skill {
	s.SortOrder = n
	return s
}
