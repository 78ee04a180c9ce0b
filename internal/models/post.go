package models

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Post lifecycle statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatuses is the closed set of post statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

// Post represents a blog post
type Post struct {
	ID             string         `gorm:"primaryKey;type:varchar(24);column:id" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null;column:title" json:"title"`
	Content        string         `gorm:"type:text;not null;column:content" json:"content"`
	AuthorID       string         `gorm:"type:varchar(24);not null;index;column:author_id" json:"authorId"`
	CategoryID     sql.NullString `gorm:"type:varchar(24);index;column:category_id" json:"categoryId"`
	PublishDate    time.Time      `gorm:"column:publish_date" json:"publishDate"`
	LastUpdateDate time.Time      `gorm:"column:last_update_date" json:"lastUpdateDate"`
	Status         string         `gorm:"type:varchar(16);not null;default:'published';column:status" json:"status"`
	Views          int64          `gorm:"not null;default:0;column:views" json:"views"`
	Likes          int64          `gorm:"not null;default:0;column:likes" json:"likes"`
	Comments       int64          `gorm:"not null;default:0;column:comments" json:"comments"`
	CoverImage     string         `gorm:"type:varchar(512);default:'https://placehold.co/600x400';column:cover_image" json:"coverImage"`
	Summary        string         `gorm:"type:varchar(512);column:summary" json:"summary"`
	Featured       bool           `gorm:"not null;default:false;column:featured" json:"featured"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updatedAt"`

	// Relationships
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns an object id and publish timestamps when unset
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewObjectID()
	}
	now := time.Now().UTC()
	if p.PublishDate.IsZero() {
		p.PublishDate = now
	}
	if p.LastUpdateDate.IsZero() {
		p.LastUpdateDate = now
	}
	return nil
}

// Counter returns the named counter value.
func (p *Post) Counter(field string) (int64, bool) {
	switch field {
	case "views":
		return p.Views, true
	case "likes":
		return p.Likes, true
	case "comments":
		return p.Comments, true
	}
	return 0, false
}

// SetCounter sets the named counter value.
func (p *Post) SetCounter(field string, v int64) bool {
	switch field {
	case "views":
		p.Views = v
	case "likes":
		p.Likes = v
	case "comments":
		p.Comments = v
	default:
		return false
	}
	return true
}

// IsValidStatus reports whether status is one of the known post statuses.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
