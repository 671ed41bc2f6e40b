package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// SubmissionRepo реализует repository.SubmissionRepository
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo создает новый репозиторий попыток
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// CreateIfAbsent атомарно создает попытку для пары (user, contest), если ее нет.
// Уникальный индекс idx_user_contest гарантирует не более одной попытки на пару;
// конкурентные первые join-ы разрешаются через ON CONFLICT DO NOTHING.
func (r *SubmissionRepo) CreateIfAbsent(submission *entity.Submission) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "contest_id"}},
		DoNothing: true,
	}).Create(submission)

	if result.Error != nil {
		// ON CONFLICT покрывает гонку, но проверяем unique violation на случай
		// конфликтов от других ограничений
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("create submission failed: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetByID возвращает попытку по ID
func (r *SubmissionRepo) GetByID(id uint) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.db.First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetByUserAndContest возвращает попытку пользователя в конкурсе
func (r *SubmissionRepo) GetByUserAndContest(userID, contestID uint) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.db.Where("user_id = ? AND contest_id = ?", userID, contestID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetForUpdate читает попытку под блокировкой строки (SELECT ... FOR UPDATE).
// Сериализует read-merge-write последовательности конкурентных автосохранений
// для одной пары (user, contest).
func (r *SubmissionRepo) GetForUpdate(tx *gorm.DB, userID, contestID uint) (*entity.Submission, error) {
	var submission entity.Submission
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND contest_id = ?", userID, contestID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		if isRetriable(err) {
			return nil, fmt.Errorf("%w: %v", repository.ErrSerialization, err)
		}
		return nil, err
	}
	return &submission, nil
}

// Save сохраняет попытку в рамках переданной транзакции
func (r *SubmissionRepo) Save(tx *gorm.DB, submission *entity.Submission) error {
	if err := tx.Save(submission).Error; err != nil {
		if isRetriable(err) {
			return fmt.Errorf("%w: %v", repository.ErrSerialization, err)
		}
		return err
	}
	return nil
}

// GetByUser возвращает все попытки пользователя с конкурсами, новые первыми
func (r *SubmissionRepo) GetByUser(userID uint) ([]entity.Submission, error) {
	var submissions []entity.Submission
	err := r.db.Preload("Contest").
		Where("user_id = ?", userID).
		Order("submitted_at DESC NULLS LAST, started_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// GetAll возвращает попытки всех пользователей (для админа) с total count
func (r *SubmissionRepo) GetAll(limit, offset int) ([]entity.Submission, int64, error) {
	var submissions []entity.Submission
	var total int64

	if err := r.db.Model(&entity.Submission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Contest").Preload("User").
		Order("submitted_at DESC NULLS LAST, started_at DESC").
		Limit(limit).Offset(offset).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// GetContestResults возвращает завершенные попытки конкурса для таблицы лидеров
func (r *SubmissionRepo) GetContestResults(contestID uint, limit, offset int) ([]entity.Submission, int64, error) {
	var submissions []entity.Submission
	var total int64

	query := r.db.Model(&entity.Submission{}).
		Where("contest_id = ? AND status = ?", contestID, entity.SubmissionStatusSubmitted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("score DESC, submitted_at ASC").
		Limit(limit).Offset(offset).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// GetTopResult возвращает лучший результат конкурса
func (r *SubmissionRepo) GetTopResult(contestID uint) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.db.Preload("User").
		Where("contest_id = ? AND status = ?", contestID, entity.SubmissionStatusSubmitted).
		Order("score DESC, submitted_at ASC").
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// Delete удаляет попытку (админская операция над таблицей лидеров)
func (r *SubmissionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Submission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

// isRetriable проверяет serialization failure (40001) и deadlock (40P01):
// такие транзакции безопасно повторить
func isRetriable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == "40001" || pqErr.Code == "40P01") {
		return true
	}
	return false
}
