package controllers

import (
	"net/http"

	"equipment-panel/internal/services"
	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewReportController(exportService services.ExportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{exportService: exportService, logger: logger}
}

func (c *ReportController) ExportEquipment(ctx echo.Context) error {
	data, err := c.exportService.EquipmentXLSX(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ExportEquipment: не удалось сформировать XLSX", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+constants.XLSXExportFileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, data)
}
