package main

import (
	"flag"
	"log"

	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/config"
	"equipment-panel/pkg/database/postgresql"
	applogger "equipment-panel/pkg/logger"
	"equipment-panel/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать администратора (ADMIN_USERNAME / ADMIN_PASSWORD)")
	runEquipment := flag.Bool("equipment", false, "Добавить демонстрационное оборудование")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -equipment)")
	username := flag.String("username", "", "Имя администратора, переопределяет ADMIN_USERNAME")
	password := flag.String("password", "", "Пароль администратора, переопределяет ADMIN_PASSWORD")

	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin -username admin -password tajna")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	if *username != "" {
		cfg.Admin.Username = *username
	}
	if *password != "" {
		cfg.Admin.Password = *password
	}

	logger := applogger.NewLogger(cfg.Log.File)
	defer logger.Sync()

	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool); err != nil {
		log.Fatalf("❌ Ошибка миграций: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(repositories.NewUserRepository(dbPool, logger), cfg)
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedDemo(repositories.NewEquipmentRepository(dbPool, logger))
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
