package models

import "time"

type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	DOB               string `json:"dob,omitempty"`
	Role              string `json:"role"`
	PasswordHash      string `json:"-"` // не отдаём наружу
	FailLoginAttempts int    `json:"fail_login_attempts"`

	// последняя выданная сессия, хранится в БД
	SessionToken *string `json:"-"`

	// пара выставляется forgot-password, гасится reset-password
	PasswordResetToken        *string    `json:"-"`
	PasswordResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	DOB      string `json:"dob"`
	Role     string `json:"role" binding:"required,oneof=ADMIN NORMAL_USER"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Token    string `json:"token" binding:"required"`
}

type ValidateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
