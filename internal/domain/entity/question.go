package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Типы вопросов
const (
	QuestionTypeSingle = "SINGLE"
	QuestionTypeMulti  = "MULTI"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос конкурса
type Question struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ContestID      uint        `gorm:"not null;index" json:"contest_id"`
	Text           string      `gorm:"size:500;not null" json:"text"`
	Type           string      `gorm:"size:10;not null;default:'SINGLE'" json:"type"`
	Options        StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswers StringArray `gorm:"type:jsonb;not null" json:"-"` // Скрыто от клиента
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsMulti возвращает true, если вопрос допускает несколько правильных ответов
func (q *Question) IsMulti() bool {
	return q.Type == QuestionTypeMulti
}

// Evaluate проверяет, является ли выбор пользователя правильным ответом.
// Для MULTI требуется точное совпадение множеств (без частичного зачета),
// для SINGLE сравнивается только первый выбранный вариант.
func (q *Question) Evaluate(selected StringArray) bool {
	if q.IsMulti() {
		if len(selected) != len(q.CorrectAnswers) {
			return false
		}
		chosen := make(map[string]struct{}, len(selected))
		for _, opt := range selected {
			chosen[opt] = struct{}{}
		}
		// Дубликаты в выборе схлопываются, размер множества обязан совпасть
		if len(chosen) != len(q.CorrectAnswers) {
			return false
		}
		for _, correct := range q.CorrectAnswers {
			if _, ok := chosen[correct]; !ok {
				return false
			}
		}
		return true
	}

	if len(selected) == 0 || len(q.CorrectAnswers) == 0 {
		return false
	}
	return selected[0] == q.CorrectAnswers[0]
}

// HasOption проверяет, входит ли вариант в список опций вопроса
func (q *Question) HasOption(option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}

// Validate проверяет целостность вопроса перед сохранением:
// корректные ответы не пусты и являются подмножеством опций
func (q *Question) Validate() error {
	if len(q.Options) < 2 {
		return errors.New("question must have at least two options")
	}
	if len(q.CorrectAnswers) == 0 {
		return errors.New("question must have at least one correct answer")
	}
	if q.Type != QuestionTypeSingle && q.Type != QuestionTypeMulti {
		return errors.New("question type must be SINGLE or MULTI")
	}
	if q.Type == QuestionTypeSingle && len(q.CorrectAnswers) != 1 {
		return errors.New("SINGLE question must have exactly one correct answer")
	}
	for _, correct := range q.CorrectAnswers {
		if !q.HasOption(correct) {
			return errors.New("correct answer must be one of the question options")
		}
	}
	return nil
}
