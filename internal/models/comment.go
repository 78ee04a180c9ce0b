package models

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post, optionally a reply to another comment
type Comment struct {
	ID              string         `gorm:"primaryKey;type:varchar(24);column:id" json:"id"`
	PostID          string         `gorm:"type:varchar(24);not null;index;column:post_id" json:"postId"`
	AuthorID        string         `gorm:"type:varchar(24);not null;index;column:author_id" json:"authorId"`
	Content         string         `gorm:"type:text;not null;column:content" json:"content"`
	ParentCommentID sql.NullString `gorm:"type:varchar(24);index;column:parent_comment_id" json:"parentCommentId"`
	Likes           int64          `gorm:"not null;default:0;column:likes" json:"likes"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updatedAt"`

	// Relationships
	Post   *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns an object id when none is set
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewObjectID()
	}
	return nil
}

// Counter returns the named counter value.
func (c *Comment) Counter(field string) (int64, bool) {
	if field == "likes" {
		return c.Likes, true
	}
	return 0, false
}

// SetCounter sets the named counter value.
func (c *Comment) SetCounter(field string, v int64) bool {
	if field == "likes" {
		c.Likes = v
		return true
	}
	return false
}
