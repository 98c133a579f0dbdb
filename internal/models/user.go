package model

import (
	"strings"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
)

type User struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Name     string         `gorm:"not null;size:50" json:"name"`
	Email    string         `gorm:"not null;size:255" json:"email"`
	Password string         `gorm:"not null" json:"-"`
	Role     constants.Role `gorm:"type:varchar(20);not null" json:"role"`
}

func (u *User) IsManager() bool {
	return u != nil && u.Role == constants.RoleManager
}

func (u *User) IsMember() bool {
	return u != nil && u.Role == constants.RoleMember
}

// HasEmail compares addresses case-insensitively, ignoring surrounding blanks.
func (u *User) HasEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}

// UserSummary is the denormalized form attached to related records.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
