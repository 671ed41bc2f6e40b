package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/contest-api/internal/handler/dto"
	"github.com/yourusername/contest-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetAllUsers возвращает список всех пользователей (только админ)
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	limit, offset := paginationParams(c)

	users, total, err := h.userService.ListUsers(currentPolicy(c), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.NewListUserResponse(users),
		"total": total,
	})
}
