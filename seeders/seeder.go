package seeders

import (
	"context"
	"log"

	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/config"
)

// SeedAdmin создаёт администратора из ADMIN_USERNAME / ADMIN_PASSWORD.
func SeedAdmin(repo repositories.UserRepositoryInterface, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания администратора...")

	if err := SeedAdminUser(ctx, repo, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов!")
}

// SeedDemo наполняет таблицу оборудования демонстрационными данными.
func SeedDemo(repo repositories.EquipmentRepositoryInterface) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения оборудования...")

	if err := SeedEquipment(ctx, repo); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	log.Println("✅ Наполнение оборудования завершено!")
}
