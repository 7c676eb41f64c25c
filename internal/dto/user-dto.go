package dto

import "equipment-panel/pkg/constants"

type CreateUserDTO struct {
	Username string         `json:"username" validate:"required,max=80"`
	Password string         `json:"password" validate:"required"`
	Role     constants.Role `json:"role"     validate:"required,role"`
}

// UpdateUserRoleDTO - частичное обновление: меняется только роль.
type UpdateUserRoleDTO struct {
	Role constants.Role `json:"role" validate:"required,role"`
}

// UserDTO никогда не содержит пароль.
type UserDTO struct {
	ID       uint64         `json:"id"`
	Username string         `json:"username"`
	Role     constants.Role `json:"role"`
}
