package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки проверки токена
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
)

// Identity — узкая проекция пользователя, зашиваемая в токен.
// Полная запись в claims не попадает никогда.
type Identity struct {
	UserID string
	Role   string
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные сессионные токены.
type TokenService interface {
	Issue(identity Identity, ttl time.Duration) (string, error)
	Verify(token string) (*Identity, error)
}

type tokenService struct {
	secret []byte
}

// NewTokenService принимает секрет из конфигурации процесса; глобальных
// ключей нет, ротация вне зоны ответственности.
func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: identity.UserID,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Verify(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, err
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignatureInvalid
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
