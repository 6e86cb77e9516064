package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category is the closed set of portfolio work types.
type Category string

const (
	CategoryBranding     Category = "branding"
	CategoryPoster       Category = "poster"
	CategorySocial       Category = "social"
	CategoryIllustration Category = "illustration"
)

// Status is the publication lifecycle of a project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Project represents a single portfolio work item with metadata and counters
type Project struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string                      `json:"title" gorm:"type:text;not null" validate:"required,max=100"`
	Category    Category                    `json:"category" gorm:"type:text;not null;index:idx_projects_category_status" validate:"required,oneof=branding poster social illustration"`
	Description string                      `json:"description" gorm:"type:text;not null" validate:"required,min=10,max=500"`
	Image       string                      `json:"image" gorm:"type:text;not null" validate:"required,image_url"`
	Thumbnail   string                      `json:"thumbnail,omitempty" gorm:"type:text" validate:"omitempty,url"`
	Likes       int                         `json:"likes" gorm:"not null;default:0"`
	Views       int                         `json:"views" gorm:"not null;default:0"`
	Featured    bool                        `json:"featured" gorm:"not null;default:false;index:idx_projects_featured_created"`
	Status      Status                      `json:"status" gorm:"type:text;not null;default:draft;index:idx_projects_category_status" validate:"omitempty,oneof=draft published archived"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	ClientName  string                      `json:"clientName,omitempty" gorm:"type:text"`
	ProjectURL  string                      `json:"projectUrl,omitempty" gorm:"type:text" validate:"omitempty,url"`
	CompletedAt time.Time                   `json:"completedAt"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"index:idx_projects_featured_created,sort:desc"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// BeforeCreate assigns the identifier and the remaining store defaults.
// Identifiers are store-owned; whatever the caller supplied is discarded.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.CompletedAt.IsZero() {
		p.CompletedAt = time.Now()
	}
	return nil
}

// ProjectPatch is the admin edit payload. Only fields present in the request
// are applied; counters and store-managed timestamps are not editable at all.
type ProjectPatch struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Category    *Category  `json:"category" validate:"omitempty,oneof=branding poster social illustration"`
	Description *string    `json:"description" validate:"omitempty,min=10,max=500"`
	Image       *string    `json:"image" validate:"omitempty,image_url"`
	Thumbnail   *string    `json:"thumbnail" validate:"omitempty,url"`
	Featured    *bool      `json:"featured"`
	Status      *Status    `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags        *[]string  `json:"tags"`
	ClientName  *string    `json:"clientName"`
	ProjectURL  *string    `json:"projectUrl" validate:"omitempty,url"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Columns returns the patch as a column/value map suitable for a targeted
// update. Nil fields are absent from the map.
func (p ProjectPatch) Columns() map[string]any {
	columns := make(map[string]any)
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Category != nil {
		columns["category"] = *p.Category
	}
	if p.Description != nil {
		columns["description"] = *p.Description
	}
	if p.Image != nil {
		columns["image"] = *p.Image
	}
	if p.Thumbnail != nil {
		columns["thumbnail"] = *p.Thumbnail
	}
	if p.Featured != nil {
		columns["featured"] = *p.Featured
	}
	if p.Status != nil {
		columns["status"] = *p.Status
	}
	if p.Tags != nil {
		columns["tags"] = datatypes.JSONSlice[string](*p.Tags)
	}
	if p.ClientName != nil {
		columns["client_name"] = *p.ClientName
	}
	if p.ProjectURL != nil {
		columns["project_url"] = *p.ProjectURL
	}
	if p.CompletedAt != nil {
		columns["completed_at"] = *p.CompletedAt
	}
	return columns
}
