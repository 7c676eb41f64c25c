package controllers

import (
	"net/http"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/services"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	users, err := c.userService.GetUsers(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetUsers: ошибка при получении списка пользователей", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Ne mogu da učitam korisnike", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, users, http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateUser: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Neispravan format podataka", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateUser: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.CreateUser(ctx.Request().Context(), payload); err != nil {
		c.logger.Warn("CreateUser: ошибка при создании пользователя", zap.String("username", payload.Username), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.MessageResponse(ctx, "Korisnik dodat", http.StatusCreated)
}

func (c *UserController) UpdateUserRole(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "korisnika")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserRoleDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateUserRole: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Neispravan format podataka", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("UpdateUserRole: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.UpdateUserRole(ctx.Request().Context(), id, payload.Role); err != nil {
		c.logger.Warn("UpdateUserRole: ошибка при изменении роли", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.MessageResponse(ctx, "Uloga izmenjena", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "korisnika")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		c.logger.Warn("DeleteUser: ошибка при удалении пользователя", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.MessageResponse(ctx, "Korisnik obrisan", http.StatusOK)
}
