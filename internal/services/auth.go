package services

import (
	"context"
	"errors"
	"time"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/service"
	"equipment-panel/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (string, *dto.MeDTO, error)
	Logout(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	CurrentUser(ctx context.Context, userID uint64) (string, constants.Role, error)
}

type AuthService struct {
	userRepository repositories.UserRepositoryInterface
	cache          repositories.CacheRepositoryInterface
	jwtSvc         service.JWTService
	logger         *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		cache:          cache,
		jwtSvc:         jwtSvc,
		logger:         logger,
	}
}

// Login проверяет пароль и выдаёт токен сессии.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (string, *dto.MeDTO, error) {
	user, err := s.userRepository.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Login: пользователь не найден", zap.String("username", payload.Username))
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.logger.Warn("Login: неверный пароль", zap.String("username", payload.Username))
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtSvc.GenerateSession(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID), zap.String("role", user.Role.String()))
	return token, &dto.MeDTO{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Logout помечает сессию отозванной до момента её естественного истечения.
func (s *AuthService) Logout(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, constants.RevokedSessionKeyPrefix+sessionID, 1, ttl)
}

func (s *AuthService) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	return s.cache.Exists(ctx, constants.RevokedSessionKeyPrefix+sessionID)
}

// CurrentUser отдаёт актуальные имя и роль владельца сессии.
// Удалённый пользователь считается неавторизованным.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (string, constants.Role, error) {
	user, err := s.userRepository.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("CurrentUser: пользователь сессии удалён", zap.Uint64("userID", userID))
			return "", "", apperrors.ErrUnauthorized
		}
		return "", "", err
	}
	return user.Username, user.Role, nil
}
