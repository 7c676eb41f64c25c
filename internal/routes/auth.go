package routes

import (
	"equipment-panel/internal/controllers"
	"equipment-panel/internal/services"
	"equipment-panel/pkg/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(
	e *echo.Echo,
	api *echo.Group,
	secureGroup *echo.Group,
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	secureCookie bool,
	logger *zap.Logger,
) {
	authCtrl := controllers.NewAuthController(authService, jwtSvc, secureCookie, logger)

	api.POST("/auth/login", authCtrl.Login)
	secureGroup.GET("/me", authCtrl.Me)
	e.POST("/logout", authCtrl.Logout)
}
