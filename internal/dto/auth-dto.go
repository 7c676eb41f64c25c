package dto

import "equipment-panel/pkg/constants"

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MeDTO - текущий пользователь сессии.
type MeDTO struct {
	ID       uint64         `json:"id"`
	Username string         `json:"username"`
	Role     constants.Role `json:"role"`
}

func (m MeDTO) IsAdmin() bool {
	return m.Role == constants.RoleAdmin
}
