package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/middleware"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// handleServiceError преобразует ошибки сервисного слоя в HTTP-ответы
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission is already finalized", "error_type": "invalid_state"})
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission is already finalized", "error_type": "already_submitted"})
	case errors.Is(err, apperrors.ErrContestNotStarted):
		c.JSON(http.StatusConflict, gin.H{"error": "Contest has not started yet", "error_type": "contest_not_started"})
	case errors.Is(err, apperrors.ErrContestClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Contest is closed", "error_type": "contest_closed"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID возвращает ID аутентифицированного пользователя (0 для гостя)
func currentUserID(c *gin.Context) uint {
	if id, exists := c.Get(middleware.ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// currentRole возвращает роль аутентифицированного пользователя ("" для гостя)
func currentRole(c *gin.Context) string {
	if role, exists := c.Get(middleware.ContextRole); exists {
		return role.(string)
	}
	return ""
}

// currentPolicy строит политику видимости для текущего запроса
func currentPolicy(c *gin.Context) service.VisibilityPolicy {
	return service.PolicyForRole(currentRole(c), currentUserID(c))
}

// isAdmin возвращает true для запросов с ролью администратора
func isAdmin(c *gin.Context) bool {
	return currentRole(c) == entity.RoleAdmin
}
