// Файл: seeders/admin_user_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"equipment-panel/internal/entities"
	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/utils"
)

// SeedAdminUser создаёт первого администратора. Повторный запуск ничего не меняет.
func SeedAdminUser(ctx context.Context, repo repositories.UserRepositoryInterface, username, password string) error {
	log.Printf("  - Создание администратора '%s'...", username)

	if username == "" || password == "" {
		return fmt.Errorf("korisničko ime i lozinka administratora su obavezni")
	}

	_, err := repo.FindByUsername(ctx, username)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	id, err := repo.CreateUser(ctx, &entities.User{
		Username: username,
		Password: hashedPassword,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("    - Администратор создан (id=%d).", id)
	return nil
}
