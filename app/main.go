// Файл: main.go

package main

import (
	"context"
	"errors"
	"net/http"

	"equipment-panel/internal/repositories"
	"equipment-panel/internal/routes"
	"equipment-panel/pkg/config"
	"equipment-panel/pkg/customvalidator"
	"equipment-panel/pkg/database/postgresql"
	apperrors "equipment-panel/pkg/errors"
	applogger "equipment-panel/pkg/logger"
	appmiddleware "equipment-panel/pkg/middleware"
	"equipment-panel/pkg/service"
	"equipment-panel/pkg/utils"
	"equipment-panel/seeders"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфиг (внутри загружается .env)
	cfg := config.New()

	// 2. Echo и логгер
	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger(cfg.Log.File)
	defer logger.Sync()

	loggers := &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Equipment: logger.Named("equipment"),
		User:      logger.Named("user"),
	}

	// 3. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Interna greška servera", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.RequestLogger(logger))

	// 4. Валидатор
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 5. Сервисы
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTTL, logger)

	// 6. Хранилище и роуты
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("Используется хранилище в памяти: данные не сохраняются между запусками")
		store := repositories.NewMemoryStore()
		userRepo := repositories.NewMemoryUserRepository(store)
		equipmentRepo := repositories.NewMemoryEquipmentRepository(store)

		if err := seeders.SeedAdminUser(context.Background(), userRepo, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			logger.Fatal("Не удалось создать администратора", zap.Error(err))
		}

		svcs := routes.NewServices(equipmentRepo, userRepo, repositories.NewMemoryCacheRepository(), jwtSvc, loggers)
		routes.RegisterAPIRoutes(e, svcs, jwtSvc, loggers, cfg.Server.SecureCookie)
	default:
		dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
		defer dbConn.Close()

		if err := postgresql.Migrate(dbConn); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}

		routes.InitRouter(e, dbConn, redisClient, jwtSvc, loggers, cfg)
	}

	// 7. Запуск
	addr := ":" + cfg.Server.Port
	logger.Info("🚀 Сервер запущен", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
