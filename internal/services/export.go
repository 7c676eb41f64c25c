package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var equipmentExportHeaders = []string{"ID", "Naziv", "Serijski broj", "Lokacija", "Status", "Korisnik"}

type ExportServiceInterface interface {
	EquipmentXLSX(ctx context.Context) ([]byte, error)
}

type ExportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewExportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *ExportService {
	return &ExportService{equipmentService: equipmentService, logger: logger}
}

// EquipmentXLSX строит книгу с одним листом в том же порядке колонок, что и таблица панели.
func (s *ExportService) EquipmentXLSX(ctx context.Context) ([]byte, error) {
	items, err := s.equipmentService.GetEquipments(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Oprema"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excelize: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &equipmentExportHeaders); err != nil {
		return nil, fmt.Errorf("excelize: %w", err)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{item.ID, item.Name, item.SerialNumber, item.Location, item.Status, item.User.String}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excelize: %w", err)
		}
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "D", 25)
	f.SetColWidth(sheet, "F", "F", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excelize: %w", err)
	}
	s.logger.Debug("Сформирован XLSX оборудования", zap.Int("rows", len(items)))
	return buf.Bytes(), nil
}
