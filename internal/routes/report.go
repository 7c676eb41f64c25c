package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-panel/internal/controllers"
	"equipment-panel/internal/services"
)

func runReportRouter(secureGroup *echo.Group, exportService services.ExportServiceInterface, logger *zap.Logger) {
	reportController := controllers.NewReportController(exportService, logger)

	secureGroup.GET("/equipment/export", reportController.ExportEquipment)
}
