package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/pkg/auth"
)

// User is a marketplace account. Username and email are globally unique and
// the role never changes after registration.
type User struct {
	ID        string    `gorm:"column:user_id;primaryKey;size:36" json:"user_id"`
	Username  string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role      auth.Role `gorm:"column:user_role;size:16;not null" json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Principal is the view of u that the authorization gate works with.
func (u User) Principal() auth.Principal {
	return auth.Principal{ID: u.ID, Username: u.Username, Role: u.Role}
}
