package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CsnCaio/SROA-challenge/internal/models"
	"github.com/CsnCaio/SROA-challenge/internal/services"
)

type fakeAccountService struct {
	loginToken string
	loginErr   error

	registerUser *models.User
	registerErr  error

	forgotErr error
	resetErr  error

	identity    *services.Identity
	validateErr error
}

func (f *fakeAccountService) Login(email, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAccountService) Register(req *models.RegisterRequest) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAccountService) ForgotPassword(email string) error { return f.forgotErr }

func (f *fakeAccountService) ResetPassword(email, newPassword, token string) error {
	return f.resetErr
}

func (f *fakeAccountService) ValidateToken(token string) (*services.Identity, error) {
	return f.identity, f.validateErr
}

func (f *fakeAccountService) GetUserByID(id string) (*models.User, error) { return nil, nil }
func (f *fakeAccountService) ListUsers(limit, offset int) ([]*models.User, error) {
	return nil, nil
}
func (f *fakeAccountService) GetUserCount() (int, error) { return 0, nil }

func doJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{loginToken: "jwt-token"})
		w := doJSON(t, h.Login, `{"email":"alice@example.com","password":"pw1"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "jwt-token", resp["token"])
	})

	t.Run("missing body fields", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{})
		w := doJSON(t, h.Login, `{"email":"alice@example.com"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("domain failures map to 400 with stable messages", func(t *testing.T) {
		for _, domainErr := range []error{
			services.ErrEmailNotFound,
			services.ErrWrongPassword,
			services.ErrAttemptsExhausted,
			services.ErrAccountLocked,
		} {
			h := NewAuthHandler(&fakeAccountService{loginErr: domainErr})
			w := doJSON(t, h.Login, `{"email":"alice@example.com","password":"pw2"}`)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, domainErr.Error(), resp["error"])
		}
	})
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created without password hash in payload", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{registerUser: &models.User{
			ID: "u-1", Email: "alice@example.com", Name: "Alice", Role: "NORMAL_USER",
			PasswordHash: "$2a$10$hash",
		}})
		w := doJSON(t, h.Register, `{"email":"alice@example.com","password":"pw1234","name":"Alice","role":"NORMAL_USER"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotContains(t, w.Body.String(), "$2a$10$hash")
	})

	t.Run("conflict maps to 403", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{registerErr: services.ErrUserExists})
		w := doJSON(t, h.Register, `{"email":"alice@example.com","password":"pw1234","name":"Alice","role":"NORMAL_USER"}`)

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Contains(t, w.Body.String(), "User already exists")
	})

	t.Run("unknown role rejected by binding", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{})
		w := doJSON(t, h.Register, `{"email":"alice@example.com","password":"pw1234","name":"Alice","role":"ROOT"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestForgotAndResetHandlers(t *testing.T) {
	t.Run("forgot password acknowledges", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{})
		w := doJSON(t, h.ForgotPassword, `{"email":"alice@example.com"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("forgot password missing user maps to 403", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{forgotErr: services.ErrForgotUserMissing})
		w := doJSON(t, h.ForgotPassword, `{"email":"nobody@example.com"}`)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reset password failures map to 403", func(t *testing.T) {
		for _, domainErr := range []error{
			services.ErrResetUserMissing,
			services.ErrResetTokenInvalid,
			services.ErrResetTokenExpired,
		} {
			h := NewAuthHandler(&fakeAccountService{resetErr: domainErr})
			w := doJSON(t, h.ResetPassword, `{"email":"alice@example.com","password":"pw-new","token":"tok"}`)

			require.Equal(t, http.StatusForbidden, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, domainErr.Error(), resp["error"])
		}
	})
}

func TestValidateTokenHandler(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		h := NewAuthHandler(&fakeAccountService{identity: &services.Identity{UserID: "u-1", Role: "ADMIN"}})
		w := doJSON(t, h.ValidateToken, `{"token":"jwt-token"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "u-1", resp["userId"])
		require.Equal(t, "jwt-token", resp["token"])
	})

	t.Run("typed verification failures map to 400", func(t *testing.T) {
		for _, tokenErr := range []error{
			services.ErrTokenMalformed,
			services.ErrTokenSignatureInvalid,
			services.ErrTokenExpired,
		} {
			h := NewAuthHandler(&fakeAccountService{validateErr: tokenErr})
			w := doJSON(t, h.ValidateToken, `{"token":"bad"}`)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), tokenErr.Error())
		}
	})
}
