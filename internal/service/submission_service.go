package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service/scoring"
)

// lockRetryAttempts ограничивает число повторов read-merge-write
// последовательности при конкурентных конфликтах
const lockRetryAttempts = 3

// txManager абстрагирует запуск транзакции; *gorm.DB удовлетворяет интерфейсу
type txManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// SubmissionService управляет жизненным циклом попытки участия в конкурсе:
// join → автосохранение с фиксацией ответов → финализация с подсчетом счета
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
	cacheRepo      repository.CacheRepository
	db             txManager
	now            func() time.Time
}

// NewSubmissionService создает новый сервис попыток
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
	cacheRepo repository.CacheRepository,
	db txManager,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
		cacheRepo:      cacheRepo,
		db:             db,
		now:            time.Now,
	}
}

// SetClock заменяет источник времени (для тестов)
func (s *SubmissionService) SetClock(now func() time.Time) {
	s.now = now
}

// Join регистрирует участие пользователя в конкурсе. Операция идемпотентна:
// повторный вызов возвращает существующую попытку без изменений, включая
// исходное StartedAt. Конкурентные первые join-ы разрешаются атомарным
// create-if-absent, так что попытка для пары (user, contest) всегда одна.
func (s *SubmissionService) Join(userID, contestID uint) (*entity.Submission, error) {
	// Попытка уже существует — возвращаем как есть, окно не проверяем
	existing, err := s.submissionRepo.GetByUserAndContest(userID, contestID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWindow(contest, true); err != nil {
		return nil, err
	}

	submission := &entity.Submission{
		UserID:    userID,
		ContestID: contestID,
		Answers:   entity.AnswerMap{},
		Status:    entity.SubmissionStatusInProgress,
		StartedAt: s.now(),
	}

	created, err := s.submissionRepo.CreateIfAbsent(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to join contest: %w", err)
	}
	if created {
		return submission, nil
	}

	// Проиграли гонку конкурентному join — читаем созданную им запись
	return s.submissionRepo.GetByUserAndContest(userID, contestID)
}

// SaveProgress фиксирует предложенные ответы в попытке по правилу
// "первая запись побеждает" (см. Submission.MergeAnswers) и возвращает полный
// список зафиксированных question_id. Если попытки еще нет, она создается
// прозрачно: автосохранение одновременно является join-ом.
// Попытка со статусом submitted отклоняется с ErrInvalidState.
func (s *SubmissionService) SaveProgress(userID, contestID uint, proposed entity.AnswerMap) ([]uint, error) {
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWindow(contest, true); err != nil {
		return nil, err
	}

	if err := s.ensureAttempt(userID, contestID); err != nil {
		return nil, err
	}

	var locked []uint
	err = s.withLockedSubmission(userID, contestID, func(tx *gorm.DB, submission *entity.Submission) error {
		if submission.IsSubmitted() {
			return apperrors.ErrInvalidState
		}

		locked = submission.MergeAnswers(proposed)
		savedAt := s.now()
		submission.LastSavedAt = &savedAt
		return s.submissionRepo.Save(tx, submission)
	})
	if err != nil {
		return nil, err
	}
	return locked, nil
}

// Submit финализирует попытку. Финальные ответы проходят через то же правило
// фиксации, что и автосохранение: уже зафиксированный ответ вытеснить нельзя.
// Счет считается по итоговой зафиксированной карте ответов и замораживается;
// повторная финализация отклоняется с ErrAlreadySubmitted.
func (s *SubmissionService) Submit(userID, contestID uint, final entity.AnswerMap) (*entity.Submission, error) {
	contest, err := s.contestRepo.GetWithQuestions(contestID)
	if err != nil {
		return nil, err
	}
	// После закрытия окна сдача разрешена: начатую попытку можно завершить
	if err := s.checkWindow(contest, false); err != nil {
		return nil, err
	}

	if err := s.ensureAttempt(userID, contestID); err != nil {
		return nil, err
	}

	var result *entity.Submission
	err = s.withLockedSubmission(userID, contestID, func(tx *gorm.DB, submission *entity.Submission) error {
		if submission.IsSubmitted() {
			return apperrors.ErrAlreadySubmitted
		}

		submission.MergeAnswers(final)
		submission.Score = scoring.Calculate(contest.Questions, submission.Answers)
		submission.Status = entity.SubmissionStatusSubmitted
		submittedAt := s.now()
		submission.SubmittedAt = &submittedAt

		if err := s.submissionRepo.Save(tx, submission); err != nil {
			return err
		}
		result = submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Таблица лидеров конкурса изменилась — сбрасываем кеш
	if err := s.cacheRepo.Delete(leaderboardCacheKey(contestID)); err != nil {
		log.Printf("[SubmissionService] Не удалось сбросить кеш таблицы лидеров конкурса #%d: %v", contestID, err)
	}

	return result, nil
}

// GetSubmission возвращает попытку пользователя в конкурсе
func (s *SubmissionService) GetSubmission(userID, contestID uint) (*entity.Submission, error) {
	return s.submissionRepo.GetByUserAndContest(userID, contestID)
}

// StatusByContest возвращает карту contest_id → статус попытки пользователя.
// Конкурсы без попытки в карту не попадают (им соответствует "not-started").
func (s *SubmissionService) StatusByContest(userID uint) (map[uint]string, error) {
	submissions, err := s.submissionRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	statuses := make(map[uint]string, len(submissions))
	for i := range submissions {
		statuses[submissions[i].ContestID] = submissions[i].Status
	}
	return statuses, nil
}

// ensureAttempt гарантирует существование попытки для пары (user, contest)
func (s *SubmissionService) ensureAttempt(userID, contestID uint) error {
	submission := &entity.Submission{
		UserID:    userID,
		ContestID: contestID,
		Answers:   entity.AnswerMap{},
		Status:    entity.SubmissionStatusInProgress,
		StartedAt: s.now(),
	}
	if _, err := s.submissionRepo.CreateIfAbsent(submission); err != nil {
		return fmt.Errorf("failed to ensure submission: %w", err)
	}
	return nil
}

// withLockedSubmission выполняет fn над попыткой под блокировкой строки.
// Последовательность read-merge-write повторяется при конкурентных сбоях
// транзакции, после исчерпания повторов возвращается ErrConflict.
func (s *SubmissionService) withLockedSubmission(userID, contestID uint, fn func(tx *gorm.DB, submission *entity.Submission) error) error {
	var lastErr error
	for attempt := 0; attempt < lockRetryAttempts; attempt++ {
		lastErr = s.db.Transaction(func(tx *gorm.DB) error {
			submission, err := s.submissionRepo.GetForUpdate(tx, userID, contestID)
			if err != nil {
				return err
			}
			return fn(tx, submission)
		})
		if lastErr == nil || !errors.Is(lastErr, repository.ErrSerialization) {
			return lastErr
		}
		log.Printf("[SubmissionService] Конфликт транзакции для user=%d contest=%d (попытка %d): %v",
			userID, contestID, attempt+1, lastErr)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrConflict, lastErr)
}

// checkWindow проверяет попадание текущего момента в окно конкурса.
// enforceEnd = false ослабляет верхнюю границу (для финализации).
func (s *SubmissionService) checkWindow(contest *entity.Contest, enforceEnd bool) error {
	now := s.now()
	if !contest.HasStarted(now) {
		return apperrors.ErrContestNotStarted
	}
	if enforceEnd && contest.HasEnded(now) {
		return apperrors.ErrContestClosed
	}
	return nil
}
