package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"equipment-panel/internal/dto"
	apperrors "equipment-panel/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SuccessResponse отдаёт тело как есть: коллекции уходят голым массивом.
func SuccessResponse(ctx echo.Context, body interface{}, code int) error {
	return ctx.JSON(code, body)
}

func MessageResponse(ctx echo.Context, message string, code int) error {
	return ctx.JSON(code, dto.MessageDTO{Message: message})
}

var sentinelCodes = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrConflict, http.StatusBadRequest},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrEmptySession, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrUserNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrForbidden, http.StatusForbidden},
}

// ErrorResponse пишет {"error": "..."} с кодом, выведенным из ошибки.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, dto.ErrorDTO{Error: httpErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("polje '%s' nije prošlo proveru '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, dto.ErrorDTO{Error: strings.Join(msgs, "; ")})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, dto.ErrorDTO{Error: invalidInput.Message})
	}

	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return c.JSON(s.code, dto.ErrorDTO{Error: s.err.Error()})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, dto.ErrorDTO{Error: "Interna greška servera"})
}
