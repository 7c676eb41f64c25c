package dto

import "github.com/aarondl/null/v8"

// CreateEquipmentDTO - тело POST /api/equipment. Пустой user_id приходит как null.
type CreateEquipmentDTO struct {
	Name         string      `json:"name"          validate:"required,max=100"`
	SerialNumber string      `json:"serial_number" validate:"required,max=100"`
	Location     string      `json:"location"      validate:"required,max=100"`
	Status       string      `json:"status"        validate:"required,max=30"`
	UserID       null.Uint64 `json:"user_id"`
}

type UpdateEquipmentDTO struct {
	Name         string      `json:"name"          validate:"required,max=100"`
	SerialNumber string      `json:"serial_number" validate:"required,max=100"`
	Location     string      `json:"location"      validate:"required,max=100"`
	Status       string      `json:"status"        validate:"required,max=30"`
	UserID       null.Uint64 `json:"user_id"`
}

// EquipmentDTO - запись коллекции. User - имя владельца, вычисляется на сервере.
type EquipmentDTO struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	SerialNumber string      `json:"serial_number"`
	Location     string      `json:"location"`
	Status       string      `json:"status"`
	User         null.String `json:"user"`
	UserID       null.Uint64 `json:"user_id"`
}
