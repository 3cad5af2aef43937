package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CsnCaio/SROA-challenge/internal/authz"
	"github.com/CsnCaio/SROA-challenge/internal/models"
	"github.com/CsnCaio/SROA-challenge/internal/repositories"
)

// после третьей неудачной попытки аккаунт блокируется до сброса пароля
const maxLoginAttempts = 3

// ResetNotifier доставляет reset-токен внешним каналом (почта, telegram).
// Для движка это fire-and-forget: ошибка доставки логируется, не возвращается.
type ResetNotifier interface {
	SendPasswordReset(destination, token string) error
}

// AccountService — машина состояний аутентификации: учёт неудачных попыток,
// блокировка, выдача сессионных токенов и жизненный цикл reset-токена.
type AccountService interface {
	Login(email, password string) (string, error)
	Register(req *models.RegisterRequest) (*models.User, error)
	ForgotPassword(email string) error
	ResetPassword(email, newPassword, token string) error
	ValidateToken(token string) (*Identity, error)

	GetUserByID(id string) (*models.User, error)
	ListUsers(limit, offset int) ([]*models.User, error)
	GetUserCount() (int, error)
}

type accountService struct {
	repo      repositories.UserRepository
	auth      AuthService
	tokens    TokenService
	notifiers []ResetNotifier
	emails    EmailService

	tokenTTL      time.Duration
	resetTokenTTL time.Duration
}

func NewAccountService(
	repo repositories.UserRepository,
	auth AuthService,
	tokens TokenService,
	emails EmailService,
	notifiers []ResetNotifier,
	tokenTTL, resetTokenTTL time.Duration,
) AccountService {
	return &accountService{
		repo:          repo,
		auth:          auth,
		tokens:        tokens,
		emails:        emails,
		notifiers:     notifiers,
		tokenTTL:      tokenTTL,
		resetTokenTTL: resetTokenTTL,
	}
}

// Login реализует трёхступенчатый учёт попыток:
// 1-я и 2-я неудачи — "wrong password", 3-я — "attempts exhausted",
// дальше любой вход (включая верный пароль) отклоняется как locked.
// Счётчик на успешном входе НЕ сбрасывается — его обнуляет только
// успешный reset-password.
func (s *accountService) Login(email, password string) (string, error) {
	user, err := s.findByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEmailNotFound
		}
		return "", err
	}

	if user.FailLoginAttempts >= maxLoginAttempts {
		// без проверки пароля и без мутаций
		return "", ErrAccountLocked
	}

	if !s.auth.CheckPassword(password, user.PasswordHash) {
		attempts := user.FailLoginAttempts + 1
		if err := s.repo.UpdateFailLoginAttempts(user.ID, attempts); err != nil {
			return "", fmt.Errorf("record failed login attempt: %w", err)
		}
		if attempts >= maxLoginAttempts {
			return "", ErrAttemptsExhausted
		}
		return "", ErrWrongPassword
	}

	token, err := s.tokens.Issue(Identity{UserID: user.ID, Role: user.Role}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	if err := s.repo.UpdateSessionToken(user.ID, token); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}
	log.Printf("[account][login] success userID=%s role=%s attempts=%d", user.ID, user.Role, user.FailLoginAttempts)
	return token, nil
}

func (s *accountService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if !authz.IsValidRole(req.Role) {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	// быстрый путь; гонка закрыта уникальным индексом на users.email
	exists, err := s.repo.Exists(email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		DOB:          req.DOB,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[account][register] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *accountService) ForgotPassword(email string) error {
	user, err := s.findByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForgotUserMissing
		}
		return err
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.resetTokenTTL)
	if err := s.repo.SetResetToken(user.ID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	for _, n := range s.notifiers {
		if err := n.SendPasswordReset(user.Email, token); err != nil {
			log.Printf("[account][forgot-password] delivery failed for userID=%s: %v", user.ID, err)
		}
	}
	return nil
}

func (s *accountService) ResetPassword(email, newPassword, token string) error {
	user, err := s.findByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetUserMissing
		}
		return err
	}
	if user.PasswordResetToken == nil || *user.PasswordResetToken != token {
		return ErrResetTokenInvalid
	}
	if user.PasswordResetTokenExpires == nil || time.Now().After(*user.PasswordResetTokenExpires) {
		return ErrResetTokenExpired
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// одним апдейтом: новый хеш, токен погашен, счётчик попыток в 0
	if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	log.Printf("[account][reset-password] success userID=%s", user.ID)
	return nil
}

func (s *accountService) ValidateToken(token string) (*Identity, error) {
	return s.tokens.Verify(token)
}

func (s *accountService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *accountService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *accountService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}

func (s *accountService) findByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(email))
}
