// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsDataEntry() bool {
	return u.Role == RoleDataEntry
}

const (
	RoleAdmin     = "admin"
	RoleDataEntry = "data_entry"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleDataEntry
}
