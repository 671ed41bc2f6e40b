package service

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID возвращает пользователя по ID
func (s *UserService) GetUserByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// ListUsers возвращает список пользователей (только для админа)
func (s *UserService) ListUsers(policy VisibilityPolicy, limit, offset int) ([]entity.User, int64, error) {
	if !policy.CanViewAllHistories() {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.userRepo.List(limit, offset)
}
