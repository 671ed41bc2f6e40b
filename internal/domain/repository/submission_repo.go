package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// SubmissionRepository определяет методы для работы с попытками.
// Методы, принимающие tx, предназначены для вызова внутри транзакции:
// мьютекс уровня пары (user, contest) обеспечивается блокировкой строки.
type SubmissionRepository interface {
	// CreateIfAbsent атомарно создает попытку, если для пары (user, contest)
	// ее еще нет (INSERT ... ON CONFLICT DO NOTHING). Возвращает true,
	// если запись была создана этим вызовом.
	CreateIfAbsent(submission *entity.Submission) (bool, error)
	GetByID(id uint) (*entity.Submission, error)
	GetByUserAndContest(userID, contestID uint) (*entity.Submission, error)
	// GetForUpdate читает попытку под блокировкой строки (SELECT ... FOR UPDATE)
	GetForUpdate(tx *gorm.DB, userID, contestID uint) (*entity.Submission, error)
	// Save сохраняет попытку в рамках переданной транзакции
	Save(tx *gorm.DB, submission *entity.Submission) error

	// GetByUser возвращает все попытки пользователя (история), новые первыми
	GetByUser(userID uint) ([]entity.Submission, error)
	// GetAll возвращает попытки всех пользователей (админ), новые первыми
	GetAll(limit, offset int) ([]entity.Submission, int64, error)
	// GetContestResults возвращает завершенные попытки конкурса,
	// отсортированные по убыванию счета, затем по времени сдачи
	GetContestResults(contestID uint, limit, offset int) ([]entity.Submission, int64, error)
	GetTopResult(contestID uint) (*entity.Submission, error)
	Delete(id uint) error
}
