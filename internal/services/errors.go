package services

import "errors"

// Доменные ошибки с фиксированными текстами — клиенты матчатся по строкам,
// не менять без согласования.
var (
	ErrEmailNotFound = errors.New("E-mail not found! Please, check it and try again")

	// счётчик уже >= 3, попытка отклонена без проверки пароля
	ErrAccountLocked = errors.New("Still here? You've reached your login attempts. Please, reset your password by making a POST to api/reset-password")

	// именно эта неудачная попытка стала третьей
	ErrAttemptsExhausted = errors.New("You've reached your login attempts. Please, reset your password by making a POST to api/reset-password")

	ErrWrongPassword = errors.New("Wrong password! Please, check it and try again. PS: You have three chances!")

	ErrUserExists = errors.New("User already exists")

	ErrForgotUserMissing = errors.New("There was a problem. User does not exist")

	ErrResetUserMissing  = errors.New("There was a problem resetting your password. User does not exist")
	ErrResetTokenInvalid = errors.New("There was a problem resetting your password. Invalid Token")
	ErrResetTokenExpired = errors.New("There was a problem resetting your password. Token expired")
)
