package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"time"
)

// Статусы попытки участия в конкурсе
const (
	SubmissionStatusInProgress = "in-progress"
	SubmissionStatusSubmitted  = "submitted"
	// SubmissionStatusNotStarted — виртуальный статус для списков:
	// запись Submission для пары (user, contest) еще не создана
	SubmissionStatusNotStarted = "not-started"
)

// AnswerMap хранит зафиксированные ответы попытки: question_id → выбранные опции.
// Сериализуется в JSONB (ключи карты кодируются строками).
type AnswerMap map[uint]StringArray

// Scan реализует интерфейс sql.Scanner для AnswerMap
func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = AnswerMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для AnswerMap
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil || len(m) == 0 {
		return []byte("{}"), nil // Пустой JSON объект вместо null
	}
	return json.Marshal(m)
}

// Submission представляет попытку пользователя в конкурсе.
// Пара (user_id, contest_id) уникальна: не более одной попытки на конкурс.
type Submission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index;uniqueIndex:idx_user_contest" json:"user_id"`
	ContestID   uint       `gorm:"not null;index;uniqueIndex:idx_user_contest" json:"contest_id"`
	Answers     AnswerMap  `gorm:"type:jsonb;not null" json:"answers"`
	Status      string     `gorm:"size:20;not null;default:'in-progress';index" json:"status"`
	Score       int        `gorm:"not null;default:0" json:"score"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Contest *Contest `gorm:"foreignKey:ContestID" json:"contest,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Submission) TableName() string {
	return "submissions"
}

// IsSubmitted проверяет, завершена ли попытка
func (s *Submission) IsSubmitted() bool {
	return s.Status == SubmissionStatusSubmitted
}

// MergeAnswers вливает предложенные ответы в зафиксированные по правилу
// "первая запись побеждает": уже существующий ключ никогда не перезаписывается,
// ключи никогда не удаляются. Возвращает полный список зафиксированных
// question_id (отсортированный для стабильности ответов API).
func (s *Submission) MergeAnswers(proposed AnswerMap) []uint {
	if s.Answers == nil {
		s.Answers = AnswerMap{}
	}
	for questionID, selected := range proposed {
		if _, locked := s.Answers[questionID]; locked {
			continue // Ответ уже зафиксирован, новое значение молча отбрасывается
		}
		s.Answers[questionID] = selected
	}

	locked := make([]uint, 0, len(s.Answers))
	for questionID := range s.Answers {
		locked = append(locked, questionID)
	}
	sort.Slice(locked, func(i, j int) bool { return locked[i] < locked[j] })
	return locked
}
