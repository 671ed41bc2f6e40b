package service

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// VisibilityPolicy инкапсулирует правила видимости, зависящие от роли:
// какие уровни конкурсов доступны и чью историю можно просматривать.
// Строится один раз на запрос вместо разбросанных по коду условий на роль.
type VisibilityPolicy struct {
	role   string
	userID uint
}

// PolicyForRole возвращает политику видимости для роли.
// userID = 0 означает гостя (неаутентифицированный запрос).
func PolicyForRole(role string, userID uint) VisibilityPolicy {
	return VisibilityPolicy{role: role, userID: userID}
}

// IsGuest возвращает true для неаутентифицированного запроса
func (p VisibilityPolicy) IsGuest() bool {
	return p.userID == 0
}

// VisibleContestTypes возвращает уровни конкурсов, видимые этой роли.
// nil означает отсутствие фильтра (видны все уровни).
// Гости видят полный список конкурсов — участие все равно требует входа.
func (p VisibilityPolicy) VisibleContestTypes() []string {
	if p.IsGuest() {
		return nil
	}
	switch p.role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleVIP:
		return []string{entity.ContestTypeNormal, entity.ContestTypeVIP}
	default:
		return []string{entity.ContestTypeNormal}
	}
}

// CanViewHistoryOf проверяет, может ли субъект политики просматривать
// историю попыток пользователя ownerID
func (p VisibilityPolicy) CanViewHistoryOf(ownerID uint) bool {
	if p.IsGuest() {
		return false
	}
	if p.role == entity.RoleAdmin {
		return true
	}
	return p.userID == ownerID
}

// CanViewAllHistories возвращает true, если доступна история всех пользователей
func (p VisibilityPolicy) CanViewAllHistories() bool {
	return !p.IsGuest() && p.role == entity.RoleAdmin
}
