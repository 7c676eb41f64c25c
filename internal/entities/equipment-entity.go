package entities

import (
	"equipment-panel/pkg/types"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID           uint64      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	SerialNumber string      `json:"serial_number" db:"serial_number"`
	Location     string      `json:"location" db:"location"`
	Status       string      `json:"status" db:"status"`
	UserID       null.Uint64 `json:"user_id" db:"user_id"`

	types.BaseEntity // CreatedAt, UpdatedAt

	// Из JOIN с users, не колонка таблицы
	Username null.String `json:"user" db:"-"`
}
