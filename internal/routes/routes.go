package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-panel/internal/repositories"
	"equipment-panel/internal/services"
	"equipment-panel/pkg/config"
	"equipment-panel/pkg/middleware"
	"equipment-panel/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	User      *zap.Logger
}

// Services - всё, что нужно API-роутерам. Позволяет подменять хранилище.
type Services struct {
	Auth      services.AuthServiceInterface
	Equipment services.EquipmentServiceInterface
	User      services.UserServiceInterface
	Export    services.ExportServiceInterface
}

// NewServices собирает сервисы поверх конкретных репозиториев.
func NewServices(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	loggers *Loggers,
) *Services {
	equipmentService := services.NewEquipmentService(equipmentRepo, userRepo, loggers.Equipment)
	return &Services{
		Auth:      services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth),
		Equipment: equipmentService,
		User:      services.NewUserService(userRepo, loggers.User),
		Export:    services.NewExportService(equipmentService, loggers.Main),
	}
}

// InitRouter - продакшен-сборка: Postgres + Redis.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	svcs := NewServices(
		repositories.NewEquipmentRepository(dbConn, loggers.Equipment),
		repositories.NewUserRepository(dbConn, loggers.User),
		repositories.NewRedisCacheRepository(redisClient),
		jwtSvc,
		loggers,
	)
	RegisterAPIRoutes(e, svcs, jwtSvc, loggers, cfg.Server.SecureCookie)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

// RegisterAPIRoutes вешает REST-контракт на echo.
func RegisterAPIRoutes(e *echo.Echo, svcs *Services, jwtSvc service.JWTService, loggers *Loggers, secureCookie bool) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svcs.Auth, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(e, api, secureGroup, svcs.Auth, jwtSvc, secureCookie, loggers.Auth)
	runEquipmentRouter(secureGroup, svcs.Equipment, loggers.Equipment, authMW)
	runReportRouter(secureGroup, svcs.Export, loggers.Main)
	runUserRouter(secureGroup, svcs.User, loggers.User, authMW)
}
