package utils

import (
	"net/http"
	"strconv"

	apperrors "equipment-panel/pkg/errors"

	"github.com/labstack/echo/v4"
)

// ParseIDParam читает числовой :id из пути.
func ParseIDParam(ctx echo.Context, entity string) (uint64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Neispravan ID za "+entity,
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}
