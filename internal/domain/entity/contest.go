package entity

import (
	"time"
)

// Типы (уровни видимости) конкурсов
const (
	ContestTypeNormal = "NORMAL"
	ContestTypeVIP    = "VIP"
)

// Contest представляет конкурс
type Contest struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Description   string     `gorm:"size:500;not null;default:''" json:"description"`
	Type          string     `gorm:"size:10;not null;default:'NORMAL';index" json:"type"`
	StartTime     time.Time  `gorm:"index" json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Prize         string     `gorm:"size:255;not null;default:''" json:"prize"`
	QuestionCount int        `gorm:"not null;default:0" json:"question_count"`
	Questions     []Question `gorm:"foreignKey:ContestID" json:"questions,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Contest) TableName() string {
	return "contests"
}

// IsVIP проверяет, является ли конкурс VIP-уровня
func (c *Contest) IsVIP() bool {
	return c.Type == ContestTypeVIP
}

// HasStarted возвращает true, если окно конкурса уже открылось.
// Нулевое StartTime означает отсутствие нижней границы.
func (c *Contest) HasStarted(now time.Time) bool {
	return c.StartTime.IsZero() || !now.Before(c.StartTime)
}

// HasEnded возвращает true, если окно конкурса уже закрылось.
// Нулевое EndTime означает отсутствие верхней границы.
func (c *Contest) HasEnded(now time.Time) bool {
	return !c.EndTime.IsZero() && now.After(c.EndTime)
}

// IsOpen проверяет, находится ли момент времени внутри окна конкурса
func (c *Contest) IsOpen(now time.Time) bool {
	return c.HasStarted(now) && !c.HasEnded(now)
}
