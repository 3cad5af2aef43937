package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService — одностороннее преобразование пароля в хранимый хеш.
type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(plain, hash string) bool
}

type authService struct {
	cost int
}

func NewAuthService() AuthService {
	return &authService{cost: bcrypt.DefaultCost}
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *authService) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
