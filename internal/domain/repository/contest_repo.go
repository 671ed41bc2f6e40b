package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// ContestRepository определяет методы для работы с конкурсами
type ContestRepository interface {
	Create(contest *entity.Contest) error
	GetByID(id uint) (*entity.Contest, error)
	GetWithQuestions(id uint) (*entity.Contest, error)
	// ListByTypes возвращает конкурсы указанных уровней видимости.
	// Пустой срез типов означает отсутствие фильтра (все конкурсы).
	ListByTypes(types []string, limit, offset int) ([]entity.Contest, int64, error)
	Update(contest *entity.Contest) error
	// IncrementQuestionCount атомарно увеличивает question_count на delta
	IncrementQuestionCount(contestID uint, delta int) error
	Delete(id uint) error
}
