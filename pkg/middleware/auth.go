package middleware

import (
	"context"

	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/contextkeys"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/service"
	"equipment-panel/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionChecker сообщает, отозвана ли сессия (выход из системы),
// и отдаёт текущие имя и роль владельца сессии из хранилища.
type SessionChecker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	CurrentUser(ctx context.Context, userID uint64) (string, constants.Role, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	sessions   SessionChecker
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, sessions SessionChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		sessions:   sessions,
		logger:     logger,
	}
}

// Auth пускает только запросы с живой cookie-сессией.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// 1. Достаём токен из cookie
		cookie, err := c.Cookie(constants.SessionCookieName)
		if err != nil || cookie.Value == "" {
			m.logger.Debug("AuthMiddleware: нет cookie сессии", zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c, apperrors.ErrEmptySession, m.logger)
		}

		// 2. Валидируем токен
		claims, err := m.jwtService.ValidateToken(cookie.Value)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 3. Проверяем, не вышел ли пользователь
		revoked, err := m.sessions.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			m.logger.Error("AuthMiddleware: не удалось проверить отзыв сессии", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if revoked {
			return utils.ErrorResponse(c, apperrors.ErrTokenRevoked, m.logger)
		}

		// 4. Актуальные имя и роль владельца сессии
		username, role, err := m.sessions.CurrentUser(c.Request().Context(), claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: владелец сессии недоступен", zap.Uint64("userID", claims.UserID), zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 5. Кладём пользователя в контекст запроса
		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UsernameKey, username)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, claims.ID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAdmin - аналог admin_required: мутации доступны только администратору.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if utils.GetRoleFromCtx(c.Request().Context()) != constants.RoleAdmin {
			m.logger.Warn("AuthMiddleware: доступ без прав администратора",
				zap.String("username", utils.GetUsernameFromCtx(c.Request().Context())),
				zap.String("uri", c.Request().RequestURI),
			)
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
		return next(c)
	}
}
