package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ContestRepo реализует repository.ContestRepository
type ContestRepo struct {
	db *gorm.DB
}

// NewContestRepo создает новый репозиторий конкурсов
func NewContestRepo(db *gorm.DB) *ContestRepo {
	return &ContestRepo{db: db}
}

// Create создает новый конкурс
func (r *ContestRepo) Create(contest *entity.Contest) error {
	return r.db.Create(contest).Error
}

// GetByID возвращает конкурс по ID
func (r *ContestRepo) GetByID(id uint) (*entity.Contest, error) {
	var contest entity.Contest
	err := r.db.First(&contest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// GetWithQuestions возвращает конкурс вместе с вопросами
func (r *ContestRepo) GetWithQuestions(id uint) (*entity.Contest, error) {
	var contest entity.Contest
	err := r.db.Preload("Questions").First(&contest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// ListByTypes возвращает конкурсы указанных уровней видимости с total count
func (r *ContestRepo) ListByTypes(types []string, limit, offset int) ([]entity.Contest, int64, error) {
	var contests []entity.Contest
	var total int64

	query := r.db.Model(&entity.Contest{})
	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("start_time DESC, id DESC").Find(&contests).Error
	if err != nil {
		return nil, 0, err
	}

	return contests, total, nil
}

// Update обновляет информацию о конкурсе
func (r *ContestRepo) Update(contest *entity.Contest) error {
	return r.db.Save(contest).Error
}

// IncrementQuestionCount атомарно увеличивает question_count на delta через gorm.Expr
func (r *ContestRepo) IncrementQuestionCount(contestID uint, delta int) error {
	return r.db.Model(&entity.Contest{}).
		Where("id = ?", contestID).
		Update("question_count", gorm.Expr("question_count + ?", delta)).
		Error
}

// Delete удаляет конкурс
func (r *ContestRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Contest{}, id).Error
}
