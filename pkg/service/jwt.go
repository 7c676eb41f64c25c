package service

import (
	"errors"
	"strconv"
	"time"

	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionClaims - содержимое cookie-сессии. ID (jti) используется для отзыва при выходе.
type SessionClaims struct {
	UserID   uint64         `json:"userId"`
	Username string         `json:"username"`
	Role     constants.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateSession(userID uint64, username string, role constants.Role) (string, *SessionClaims, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	SecretKey  string
	SessionExp time.Duration
	logger     *zap.Logger
}

func NewJWTService(secretKey string, sessionExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		SecretKey:  secretKey,
		SessionExp: sessionExp,
		logger:     logger,
	}
}

func (service *jwtService) GenerateSession(userID uint64, username string, role constants.Role) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.SessionExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

func (s *jwtService) GetSessionTTL() time.Duration {
	return s.SessionExp
}

func (service *jwtService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})

	if err != nil {
		service.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, apperrors.ErrInvalidSigningMethod) {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		service.logger.Warn("Токен невалиден или не удалось извлечь claims")
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
