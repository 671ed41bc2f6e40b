package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// MaxQuestionsPerContest ограничивает размер конкурса
const MaxQuestionsPerContest = 100

// ContestService предоставляет методы для работы с конкурсами
type ContestService struct {
	contestRepo  repository.ContestRepository
	questionRepo repository.QuestionRepository
}

// NewContestService создает новый сервис конкурсов
func NewContestService(
	contestRepo repository.ContestRepository,
	questionRepo repository.QuestionRepository,
) *ContestService {
	return &ContestService{
		contestRepo:  contestRepo,
		questionRepo: questionRepo,
	}
}

// CreateContest создает новый конкурс
func (s *ContestService) CreateContest(name, description, contestType, prize string, startTime, endTime time.Time) (*entity.Contest, error) {
	if contestType == "" {
		contestType = entity.ContestTypeNormal
	}
	if contestType != entity.ContestTypeNormal && contestType != entity.ContestTypeVIP {
		return nil, fmt.Errorf("%w: contest type must be NORMAL or VIP", apperrors.ErrValidation)
	}
	if !startTime.IsZero() && !endTime.IsZero() && !endTime.After(startTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidation)
	}

	contest := &entity.Contest{
		Name:        name,
		Description: description,
		Type:        contestType,
		Prize:       prize,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := s.contestRepo.Create(contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	return contest, nil
}

// GetContestByID возвращает конкурс по ID
func (s *ContestService) GetContestByID(contestID uint) (*entity.Contest, error) {
	return s.contestRepo.GetByID(contestID)
}

// ListContests возвращает конкурсы, видимые по политике, с total count
func (s *ContestService) ListContests(policy VisibilityPolicy, limit, offset int) ([]entity.Contest, int64, error) {
	return s.contestRepo.ListByTypes(policy.VisibleContestTypes(), limit, offset)
}

// GetContestQuestions возвращает вопросы конкурса.
// Скрытие правильных ответов от не-админов — забота DTO уровня хэндлера.
func (s *ContestService) GetContestQuestions(contestID uint) ([]entity.Question, error) {
	// Убеждаемся, что конкурс существует
	if _, err := s.contestRepo.GetByID(contestID); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByContestID(contestID)
}

// AddQuestions добавляет вопросы к конкурсу.
// Вопросы конкурса неизменяемы после открытия окна: добавление разрешено
// только до StartTime.
func (s *ContestService) AddQuestions(contestID uint, questions []entity.Question) error {
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return err
	}

	if contest.HasStarted(time.Now()) && !contest.StartTime.IsZero() {
		return fmt.Errorf("%w: cannot add questions to a live contest", apperrors.ErrInvalidState)
	}

	totalQuestions := contest.QuestionCount + len(questions)
	if totalQuestions > MaxQuestionsPerContest {
		return fmt.Errorf("%w: максимальное количество вопросов – %d", apperrors.ErrValidation, MaxQuestionsPerContest)
	}

	for i := range questions {
		questions[i].ContestID = contestID
		if questions[i].Type == "" {
			questions[i].Type = entity.QuestionTypeSingle
		}
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}

	if err := s.contestRepo.IncrementQuestionCount(contestID, len(questions)); err != nil {
		return fmt.Errorf("failed to update question count: %w", err)
	}

	return nil
}

// DeleteQuestion удаляет вопрос (админская операция)
func (s *ContestService) DeleteQuestion(questionID uint) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}

	if err := s.questionRepo.Delete(questionID); err != nil {
		return err
	}

	if err := s.contestRepo.IncrementQuestionCount(question.ContestID, -1); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to update question count: %w", err)
	}

	return nil
}

// DeleteContest удаляет конкурс
func (s *ContestService) DeleteContest(contestID uint) error {
	if _, err := s.contestRepo.GetByID(contestID); err != nil {
		return err
	}
	return s.contestRepo.Delete(contestID)
}
