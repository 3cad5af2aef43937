package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CsnCaio/SROA-challenge/internal/services"
)

type UserHandler struct {
	accounts services.AccountService
}

func NewUserHandler(accounts services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// @Summary      Список пользователей
// @Tags         Users
// @Produce      json
// @Param        limit   query  int  false  "Лимит (по умолчанию 20)"
// @Param        offset  query  int  false  "Смещение"
// @Success      200  {array}  models.User
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.accounts.ListUsers(limit, offset)
	if err != nil {
		log.Printf("[users][list] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Количество пользователей
// @Tags         Users
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/users/count [get]
func (h *UserHandler) GetUserCount(c *gin.Context) {
	count, err := h.accounts.GetUserCount()
	if err != nil {
		log.Printf("[users][count] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// @Summary      Пользователь по id
// @Tags         Users
// @Produce      json
// @Param        id  path  string  true  "ID пользователя"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.accounts.GetUserByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
