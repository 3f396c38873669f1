// Package models defines identity-service records persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

// Identity is a registered principal. It is created once at registration
// and never mutated afterwards.
type Identity struct {
	ID           string
	UserName     string
	PasswordHash string
	Salt         string
	Role         common.Role
	CreatedAt    time.Time
}

// IdentityView is the non-sensitive projection returned by diagnostics.
type IdentityView struct {
	ID       string      `json:"id"`
	UserName string      `json:"username"`
	Role     common.Role `json:"role"`
}

func (i *Identity) View() IdentityView {
	return IdentityView{ID: i.ID, UserName: i.UserName, Role: i.Role}
}
