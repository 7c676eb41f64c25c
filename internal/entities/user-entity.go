// Файл: internal/entities/user-entity.go
package entities

import (
	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/types"
)

type User struct {
	ID       uint64         `json:"id" db:"id"`
	Username string         `json:"username" db:"username"`
	Password string         `json:"-" db:"password"`
	Role     constants.Role `json:"role" db:"role"`

	types.BaseEntity
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
