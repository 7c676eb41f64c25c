package routes

import (
	"equipment-panel/internal/controllers"
	"equipment-panel/internal/services"
	"equipment-panel/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	userCtrl := controllers.NewUserController(userService, logger)

	users := secureGroup.Group("/users", authMW.RequireAdmin)
	users.GET("", userCtrl.GetUsers)
	users.POST("", userCtrl.CreateUser)
	users.PUT("/:id", userCtrl.UpdateUserRole)
	users.DELETE("/:id", userCtrl.DeleteUser)
}
