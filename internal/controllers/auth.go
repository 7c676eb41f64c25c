package controllers

import (
	"net/http"
	"time"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/services"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/service"
	"equipment-panel/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService  services.AuthServiceInterface
	jwtSvc       service.JWTService
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	secureCookie bool,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		jwtSvc:       jwtSvc,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (ctrl *AuthController) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := new(http.Cookie)
	cookie.Name = constants.SessionCookieName
	cookie.Value = value
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = ctrl.secureCookie
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Expires = expires
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(
			c,
			apperrors.NewHttpError(http.StatusBadRequest, "Neispravan format podataka", err, nil),
			ctrl.logger,
		)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	token, me, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	c.SetCookie(ctrl.sessionCookie(token, time.Now().Add(ctrl.jwtSvc.GetSessionTTL())))
	return utils.SuccessResponse(c, me, http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	reqCtx := c.Request().Context()
	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dto.MeDTO{
		ID:       userID,
		Username: utils.GetUsernameFromCtx(reqCtx),
		Role:     utils.GetRoleFromCtx(reqCtx),
	}, http.StatusOK)
}

// Logout всегда заканчивается редиректом на /login, даже если сессии не было.
func (ctrl *AuthController) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		claims, err := ctrl.jwtSvc.ValidateToken(cookie.Value)
		if err == nil && claims.ExpiresAt != nil {
			if err := ctrl.authService.Logout(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				ctrl.logger.Error("Logout: не удалось отозвать сессию", zap.Uint64("userID", claims.UserID), zap.Error(err))
			} else {
				ctrl.logger.Info("Пользователь вышел из системы", zap.Uint64("userID", claims.UserID))
			}
		}
	}

	c.SetCookie(ctrl.sessionCookie("", time.Unix(0, 0)))
	return c.Redirect(http.StatusFound, "/login")
}
