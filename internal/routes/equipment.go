package routes

import (
	"equipment-panel/internal/controllers"
	"equipment-panel/internal/services"
	"equipment-panel/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, authMW.RequireAdmin)
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, authMW.RequireAdmin)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, authMW.RequireAdmin)
}
