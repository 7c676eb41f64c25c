package seeders

import (
	"context"
	"log"

	"equipment-panel/internal/entities"
	"equipment-panel/internal/repositories"
)

var equipmentsData = []entities.Equipment{
	{Name: "Laptop Dell Latitude 5420", SerialNumber: "DL5420-0001", Location: "Kancelarija 1", Status: "aktivna"},
	{Name: "Štampač HP LaserJet M404", SerialNumber: "HPM404-0001", Location: "Recepcija", Status: "aktivna"},
	{Name: "Monitor LG 24MK430", SerialNumber: "LG24-0001", Location: "Magacin", Status: "na popravci"},
}

// SeedEquipment добавляет демонстрационное оборудование без владельца.
// Записи с уже существующим серийным номером пропускаются.
func SeedEquipment(ctx context.Context, repo repositories.EquipmentRepositoryInterface) error {
	log.Println("  - Наполнение таблицы 'equipments'...")

	for _, e := range equipmentsData {
		exists, err := repo.ExistsBySerialNumber(ctx, e.SerialNumber, 0)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		item := e
		if _, err := repo.CreateEquipment(ctx, &item); err != nil {
			return err
		}
	}
	return nil
}
