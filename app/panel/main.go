package main

import (
	"errors"
	"net/http"

	"equipment-panel/internal/panel"
	"equipment-panel/internal/routes"
	"equipment-panel/pkg/config"
	applogger "equipment-panel/pkg/logger"
	appmiddleware "equipment-panel/pkg/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()

	logger := applogger.NewLogger(cfg.Log.File)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.RequestLogger(logger))

	client := panel.NewClient(cfg.Panel.APIBaseURL, cfg.Panel.RequestTimeout, logger.Named("api-client"))
	handler := panel.NewHandler(client, cfg.Server.SecureCookie, logger.Named("panel"))
	routes.InitPanelRouter(e, handler)

	addr := ":" + cfg.Panel.Port
	logger.Info("🚀 Панель запущена", zap.String("addr", addr), zap.String("api", cfg.Panel.APIBaseURL))
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Ошибка запуска панели", zap.Error(err))
	}
}
