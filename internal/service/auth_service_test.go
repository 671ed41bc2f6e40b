package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/pkg/auth"
)

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func newTestAuthService(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-key", 1)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	return NewAuthService(userRepo, jwtService), userRepo
}

func TestAuthService_Register(t *testing.T) {
	// Arrange
	svc, userRepo := newTestAuthService(t)

	userRepo.On("GetByEmail", "user@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 1
	}).Return(nil)

	// Act: email нормализуется (регистр и пробелы)
	user, token, err := svc.Register("Тест", "  User@Example.COM ", "password123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, entity.RoleNormal, user.Role, "Роль при регистрации всегда NORMAL")
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	svc, userRepo := newTestAuthService(t)
	userRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: 2}, nil)

	// Act
	_, _, err := svc.Register("Тест", "taken@example.com", "password123")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	// Arrange
	svc, userRepo := newTestAuthService(t)

	user := &entity.User{ID: 1, Email: "user@example.com", Password: "correctPassword", Role: entity.RoleNormal}
	require.NoError(t, user.BeforeSave(nil)) // Хешируем пароль как при сохранении
	userRepo.On("GetByEmail", "user@example.com").Return(user, nil)

	// Act
	loggedIn, token, err := svc.Login("user@example.com", "correctPassword")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	svc, userRepo := newTestAuthService(t)

	user := &entity.User{ID: 1, Email: "user@example.com", Password: "correctPassword"}
	require.NoError(t, user.BeforeSave(nil))
	userRepo.On("GetByEmail", "user@example.com").Return(user, nil)

	// Act
	_, _, err := svc.Login("user@example.com", "wrongPassword")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	svc, userRepo := newTestAuthService(t)
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	// Act
	_, _, err := svc.Login("ghost@example.com", "password123")

	// Assert: та же ошибка, что и при неверном пароле — email не раскрывается
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)
	userRepo.On("List", 20, 0).Return([]entity.User{{ID: 1}}, int64(1), nil)

	// Act & Assert: админу доступно
	users, total, err := svc.ListUsers(PolicyForRole(entity.RoleAdmin, 1), 20, 0)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)

	// Act & Assert: обычному пользователю запрещено
	_, _, err = svc.ListUsers(PolicyForRole(entity.RoleNormal, 5), 20, 0)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
