package services

import (
	"context"
	"errors"
	"net/http"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/entities"
	"equipment-panel/internal/repositories"
	apperrors "equipment-panel/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const msgDuplicateSerial = "Duplikat serijskog broja"

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) error
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	userRepository      repositories.UserRepositoryInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		userRepository:      userRepository,
		logger:              logger,
	}
}

func equipmentEntityToDTO(e entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:           e.ID,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Location:     e.Location,
		Status:       e.Status,
		User:         e.Username,
		UserID:       e.UserID,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error) {
	items, err := s.equipmentRepository.GetEquipments(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]dto.EquipmentDTO, 0, len(items))
	for _, e := range items {
		res = append(res, equipmentEntityToDTO(e))
	}
	return res, nil
}

// resolveOwner: несуществующий пользователь сохраняется как "без пользователя".
func (s *EquipmentService) resolveOwner(ctx context.Context, userID null.Uint64) (null.Uint64, error) {
	if !userID.Valid || userID.Uint64 == 0 {
		return null.Uint64{}, nil
	}
	if _, err := s.userRepository.FindUser(ctx, userID.Uint64); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Пользователь для оборудования не найден, привязка пропущена", zap.Uint64("userID", userID.Uint64))
			return null.Uint64{}, nil
		}
		return null.Uint64{}, err
	}
	return userID, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) error {
	exists, err := s.equipmentRepository.ExistsBySerialNumber(ctx, payload.SerialNumber, 0)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateSerial, nil, nil)
	}

	owner, err := s.resolveOwner(ctx, payload.UserID)
	if err != nil {
		return err
	}

	entity := &entities.Equipment{
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		Location:     payload.Location,
		Status:       payload.Status,
		UserID:       owner,
	}
	id, err := s.equipmentRepository.CreateEquipment(ctx, entity)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateSerial, nil, nil)
		}
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return err
	}
	s.logger.Info("Оборудование успешно создано", zap.Uint64("id", id), zap.String("serial_number", payload.SerialNumber))
	return nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	if _, err := s.equipmentRepository.FindEquipment(ctx, id); err != nil {
		return err
	}

	exists, err := s.equipmentRepository.ExistsBySerialNumber(ctx, payload.SerialNumber, id)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateSerial, nil, nil)
	}

	owner, err := s.resolveOwner(ctx, payload.UserID)
	if err != nil {
		return err
	}

	err = s.equipmentRepository.UpdateEquipment(ctx, &entities.Equipment{
		ID:           id,
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		Location:     payload.Location,
		Status:       payload.Status,
		UserID:       owner,
	})
	if errors.Is(err, apperrors.ErrConflict) {
		return apperrors.NewHttpError(http.StatusBadRequest, msgDuplicateSerial, nil, nil)
	}
	return err
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepository.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.Uint64("id", id))
	return nil
}
