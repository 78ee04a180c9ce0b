package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a post tag with a denormalized post count
type Tag struct {
	ID        string    `gorm:"primaryKey;type:varchar(24);column:id" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex;column:name" json:"name"`
	PostCount int64     `gorm:"not null;default:0;column:post_count" json:"postCount"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate assigns an object id when none is set
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewObjectID()
	}
	return nil
}

// Counter returns the named counter value.
func (t *Tag) Counter(field string) (int64, bool) {
	if field == "postCount" {
		return t.PostCount, true
	}
	return 0, false
}

// SetCounter sets the named counter value.
func (t *Tag) SetCounter(field string, v int64) bool {
	if field == "postCount" {
		t.PostCount = v
		return true
	}
	return false
}

// Category represents a post category with a denormalized post count
type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(24);column:id" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex;column:name" json:"name"`
	PostCount int64     `gorm:"not null;default:0;column:post_count" json:"postCount"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns an object id when none is set
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewObjectID()
	}
	return nil
}

// Counter returns the named counter value.
func (c *Category) Counter(field string) (int64, bool) {
	if field == "postCount" {
		return c.PostCount, true
	}
	return 0, false
}

// SetCounter sets the named counter value.
func (c *Category) SetCounter(field string, v int64) bool {
	if field == "postCount" {
		c.PostCount = v
		return true
	}
	return false
}
