package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// leaderboardCacheTTL задает время жизни кеша таблицы лидеров
const leaderboardCacheTTL = 30 * time.Second

// leaderboardCachePageSize — размер страницы, которая хранится в кеше.
// Ключ кеша не включает limit, поэтому кешируется только страница
// стандартного размера; остальные запросы идут напрямую в базу
const leaderboardCachePageSize = 20

// leaderboardCacheKey формирует ключ кеша таблицы лидеров конкурса
func leaderboardCacheKey(contestID uint) string {
	return fmt.Sprintf("leaderboard:%d", contestID)
}

// LeaderboardEntry представляет строку таблицы лидеров
type LeaderboardEntry struct {
	Rank        int        `json:"rank"`
	UserID      uint       `json:"user_id"`
	Name        string     `json:"name"`
	Score       int        `json:"score"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// Leaderboard представляет таблицу лидеров конкурса
type Leaderboard struct {
	ContestID uint               `json:"contest_id"`
	Entries   []LeaderboardEntry `json:"entries"`
	Total     int64              `json:"total"`
}

// LeaderboardService читает завершенные попытки для таблицы лидеров и истории.
// Счет и статус финализированной попытки заморожены, поэтому кеширование
// с коротким TTL безопасно; кеш сбрасывается при новой финализации.
type LeaderboardService struct {
	submissionRepo repository.SubmissionRepository
	cacheRepo      repository.CacheRepository
}

// NewLeaderboardService создает новый сервис таблицы лидеров
func NewLeaderboardService(
	submissionRepo repository.SubmissionRepository,
	cacheRepo repository.CacheRepository,
) *LeaderboardService {
	return &LeaderboardService{
		submissionRepo: submissionRepo,
		cacheRepo:      cacheRepo,
	}
}

// GetLeaderboard возвращает таблицу лидеров конкурса (счет по убыванию,
// при равенстве — более ранняя сдача выше)
func (s *LeaderboardService) GetLeaderboard(contestID uint, limit, offset int) (*Leaderboard, error) {
	// Кешируем только первую страницу стандартного размера — иначе
	// страница, закешированная с одним limit, уходила бы читателю с другим
	cacheable := offset == 0 && limit == leaderboardCachePageSize
	if cacheable {
		var cached Leaderboard
		if err := s.cacheRepo.GetJSON(leaderboardCacheKey(contestID), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] Ошибка чтения кеша конкурса #%d: %v", contestID, err)
		}
	}

	submissions, total, err := s.submissionRepo.GetContestResults(contestID, limit, offset)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{
		ContestID: contestID,
		Entries:   make([]LeaderboardEntry, 0, len(submissions)),
		Total:     total,
	}
	for i := range submissions {
		sub := &submissions[i]
		entry := LeaderboardEntry{
			Rank:        offset + i + 1,
			UserID:      sub.UserID,
			Score:       sub.Score,
			SubmittedAt: sub.SubmittedAt,
		}
		if sub.User != nil {
			entry.Name = sub.User.Name
		}
		board.Entries = append(board.Entries, entry)
	}

	if cacheable {
		if err := s.cacheRepo.SetJSON(leaderboardCacheKey(contestID), board, leaderboardCacheTTL); err != nil {
			log.Printf("[LeaderboardService] Ошибка записи кеша конкурса #%d: %v", contestID, err)
		}
	}

	return board, nil
}

// GetTopScorer возвращает лучший результат конкурса
func (s *LeaderboardService) GetTopScorer(contestID uint) (*entity.Submission, error) {
	return s.submissionRepo.GetTopResult(contestID)
}

// GetUserHistory возвращает попытки пользователя, разделенные на завершенные
// и находящиеся в процессе
func (s *LeaderboardService) GetUserHistory(policy VisibilityPolicy, ownerID uint) (completed, inProgress []entity.Submission, err error) {
	if !policy.CanViewHistoryOf(ownerID) {
		return nil, nil, apperrors.ErrForbidden
	}

	submissions, err := s.submissionRepo.GetByUser(ownerID)
	if err != nil {
		return nil, nil, err
	}

	for _, sub := range submissions {
		if sub.IsSubmitted() {
			completed = append(completed, sub)
		} else {
			inProgress = append(inProgress, sub)
		}
	}
	return completed, inProgress, nil
}

// GetAllHistories возвращает попытки всех пользователей (только для админа)
func (s *LeaderboardService) GetAllHistories(policy VisibilityPolicy, limit, offset int) ([]entity.Submission, int64, error) {
	if !policy.CanViewAllHistories() {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.submissionRepo.GetAll(limit, offset)
}

// GetAllResults возвращает все завершенные попытки конкурса (для экспорта)
func (s *LeaderboardService) GetAllResults(contestID uint) ([]entity.Submission, error) {
	submissions, _, err := s.submissionRepo.GetContestResults(contestID, MaxExportRows, 0)
	return submissions, err
}

// MaxExportRows ограничивает размер выгрузки результатов
const MaxExportRows = 10000

// DeleteResult удаляет результат из таблицы лидеров (админская операция)
func (s *LeaderboardService) DeleteResult(resultID uint) error {
	submission, err := s.submissionRepo.GetByID(resultID)
	if err != nil {
		return err
	}
	if err := s.submissionRepo.Delete(resultID); err != nil {
		return err
	}
	if err := s.cacheRepo.Delete(leaderboardCacheKey(submission.ContestID)); err != nil {
		log.Printf("[LeaderboardService] Не удалось сбросить кеш конкурса #%d: %v", submission.ContestID, err)
	}
	return nil
}
