package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
	RoleGuest = "Guest"
)

// ValidRoles is the closed set of user roles.
var ValidRoles = []string{RoleAdmin, RoleStaff, RoleGuest}

// User represents a registered user
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(24);column:id" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;uniqueIndex;column:username" json:"username"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex;column:email" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null;column:password" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Avatar    string    `gorm:"type:varchar(512);default:'https://placehold.co/400x400';column:avatar" json:"avatar"`
	Bio       string    `gorm:"type:varchar(512);default:'This guy has no biography.';column:bio" json:"bio"`
	Phone     string    `gorm:"type:varchar(32);column:phone" json:"phone"`
	LastLogin time.Time `gorm:"column:last_login" json:"lastLogin"`
	Role      string    `gorm:"type:varchar(16);not null;default:'Guest';column:role" json:"role"`
	Featured  bool      `gorm:"not null;default:false;column:featured" json:"featured"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	// Relationship lists, all reference-based
	Interests     []Tag     `gorm:"many2many:user_interests" json:"interests,omitempty"`
	Follows       []User    `gorm:"many2many:user_follows;joinForeignKey:UserID;joinReferences:FollowID" json:"follows,omitempty"`
	SavedPosts    []Post    `gorm:"many2many:user_saved_posts" json:"savedPosts,omitempty"`
	LikedPosts    []Post    `gorm:"many2many:user_liked_posts" json:"likedPosts,omitempty"`
	Posts         []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	LikedComments []Comment `gorm:"many2many:user_liked_comments" json:"likedComments,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an object id when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewObjectID()
	}
	return nil
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ListFields are the user relationship lists that can be edited through the
// update-list-fields operation, keyed by API field name.
var ListFields = []string{"interests", "follows", "savedPosts", "likedPosts", "likedComments"}

// IsListField reports whether name is an editable relationship list.
func IsListField(name string) bool {
	for _, f := range ListFields {
		if f == name {
			return true
		}
	}
	return false
}
