package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CsnCaio/SROA-challenge/internal/models"
	"github.com/CsnCaio/SROA-challenge/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
}

func NewAuthHandler(accounts services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// статус для доменной ошибки; тексты едут клиенту как есть
func authErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrEmailNotFound),
		errors.Is(err, services.ErrAccountLocked),
		errors.Is(err, services.ErrAttemptsExhausted),
		errors.Is(err, services.ErrWrongPassword):
		return http.StatusBadRequest, true
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrForgotUserMissing),
		errors.Is(err, services.ErrResetUserMissing),
		errors.Is(err, services.ErrResetTokenInvalid),
		errors.Is(err, services.ErrResetTokenExpired):
		return http.StatusForbidden, true
	}
	return 0, false
}

func respondAuthError(c *gin.Context, op string, err error) {
	if status, ok := authErrorStatus(err); ok {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[auth][%s] internal error: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// @Summary      Вход в систему
// @Description  Аутентифицирует пользователя и возвращает сессионный токен
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	token, err := h.accounts.Login(email, req.Password)
	if err != nil {
		respondAuthError(c, "login", err)
		return
	}

	log.Printf("[auth][login] success email=%q took=%s", email, time.Since(start).Truncate(time.Millisecond))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// @Summary      Регистрация
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body      models.RegisterRequest  true  "Данные пользователя"
// @Success      201   {object}  models.User
// @Failure      403   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(&req)
	if err != nil {
		respondAuthError(c, "register", err)
		return
	}

	log.Printf("[auth][register] created userID=%s role=%s", user.ID, user.Role)
	c.JSON(http.StatusCreated, user) // PasswordHash помечен json:"-", наружу не уйдёт
}

// @Summary      Запрос на сброс пароля
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        payload  body      models.ForgotPasswordRequest  true  "E-mail аккаунта"
// @Success      200      {object}  map[string]bool
// @Failure      403      {object}  map[string]string
// @Router       /api/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ForgotPassword(req.Email); err != nil {
		respondAuthError(c, "forgot-password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Сброс пароля по токену
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        payload  body      models.ResetPasswordRequest  true  "E-mail, новый пароль и reset-токен"
// @Success      200      {object}  map[string]bool
// @Failure      403      {object}  map[string]string
// @Router       /api/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResetPassword(req.Email, req.Password, req.Token); err != nil {
		respondAuthError(c, "reset-password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Проверка сессионного токена
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        payload  body      models.ValidateTokenRequest  true  "Токен"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /api/validate-token [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req models.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.accounts.ValidateToken(req.Token)
	if err != nil {
		// текст ошибки токен-сервиса стабилен, отдаём как есть
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":  req.Token,
		"userId": identity.UserID,
	})
}
