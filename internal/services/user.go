package services

import (
	"context"
	"errors"
	"net/http"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/entities"
	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/utils"

	"go.uber.org/zap"
)

const msgDuplicateUsername = "Korisničko ime već postoji"

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) error
	UpdateUserRole(ctx context.Context, id uint64, role constants.Role) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewUserService(userRepository repositories.UserRepositoryInterface, logger *zap.Logger) *UserService {
	return &UserService{userRepository: userRepository, logger: logger}
}

func userEntityToDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		res = append(res, userEntityToDTO(u))
	}
	return res, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) error {
	_, err := s.userRepository.FindByUsername(ctx, payload.Username)
	if err == nil {
		return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateUsername, nil, nil)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	id, err := s.userRepository.CreateUser(ctx, &entities.User{
		Username: payload.Username,
		Password: hashed,
		Role:     payload.Role,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateUsername, nil, nil)
		}
		s.logger.Error("Ошибка при создании пользователя", zap.String("username", payload.Username), zap.Error(err))
		return err
	}
	s.logger.Info("Пользователь создан", zap.Uint64("id", id), zap.String("role", payload.Role.String()))
	return nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id uint64, role constants.Role) error {
	if !role.IsValid() {
		return apperrors.NewInvalidInputError("nepoznata uloga: %s", role)
	}
	if err := s.userRepository.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.logger.Info("Роль пользователя изменена", zap.Uint64("id", id), zap.String("role", role.String()))
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.Uint64("id", id))
	return nil
}
