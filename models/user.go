package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents the users table: the case handlers acting on requirements.
// Credential management lives in the external auth system; this service only
// verifies tokens and resolves actor display names.
type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	RoleID    int        `gorm:"column:role_id" json:"role_id"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName returns the stable display string used for actor stamping.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return fmt.Sprintf("user-%d", u.UserID)
}

// Role ids.
const (
	RoleCaseHandler = 1
	RoleAdmin       = 2
)
