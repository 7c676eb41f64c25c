package routes

import (
	"equipment-panel/internal/panel"

	"github.com/labstack/echo/v4"
)

// InitPanelRouter регистрирует HTTP-поверхность панели.
func InitPanelRouter(e *echo.Echo, h *panel.Handler) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	e.GET("/", h.Index)
	e.POST("/equipment", h.CreateEquipment)
	e.POST("/equipment/:id/delete", h.DeleteEquipment)
	e.POST("/users", h.CreateUser)
	e.POST("/users/:id/role", h.UpdateUserRole)
	e.POST("/users/:id/delete", h.DeleteUser)

	e.GET("/export.csv", h.ExportCSV)
	e.GET("/export.xlsx", h.ExportXLSX)
}
