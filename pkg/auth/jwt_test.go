package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 24)
	assert.Error(t, err, "Пустой секрет должен отклоняться")
}

func TestJWTService_GenerateAndParseToken(t *testing.T) {
	// Arrange
	svc, err := NewJWTService("test-secret", 1)
	require.NoError(t, err)

	user := &entity.User{
		ID:    42,
		Email: "user@example.com",
		Role:  entity.RoleVIP,
	}

	// Act
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, entity.RoleVIP, claims.Role)
	assert.NotEmpty(t, claims.ID, "Каждый токен получает уникальный jti")
}

func TestJWTService_ParseToken_WrongSecret(t *testing.T) {
	// Arrange
	issuer, err := NewJWTService("secret-one", 1)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-two", 1)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(&entity.User{ID: 1})
	require.NoError(t, err)

	// Act
	_, err = verifier.ParseToken(token)

	// Assert
	assert.Error(t, err, "Токен с чужой подписью должен отклоняться")
}

func TestJWTService_ParseToken_Garbage(t *testing.T) {
	svc, err := NewJWTService("test-secret", 1)
	require.NoError(t, err)

	_, err = svc.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_UniqueTokens(t *testing.T) {
	// Arrange
	svc, err := NewJWTService("test-secret", 1)
	require.NoError(t, err)
	user := &entity.User{ID: 1, Email: "user@example.com"}

	// Act
	first, err := svc.GenerateToken(user)
	require.NoError(t, err)
	second, err := svc.GenerateToken(user)
	require.NoError(t, err)

	// Assert: jti делает токены уникальными даже в одну секунду
	assert.NotEqual(t, first, second)
}
