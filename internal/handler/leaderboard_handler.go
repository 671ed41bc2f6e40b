package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/contest-api/internal/handler/dto"
	"github.com/yourusername/contest-api/internal/service"
)

// LeaderboardHandler обрабатывает запросы таблицы лидеров и истории
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
	contestService     *service.ContestService
}

// NewLeaderboardHandler создает новый обработчик таблицы лидеров
func NewLeaderboardHandler(
	leaderboardService *service.LeaderboardService,
	contestService *service.ContestService,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		contestService:     contestService,
	}
}

// GetLeaderboard возвращает таблицу лидеров конкурса
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)
	limit, offset := paginationParams(c)

	board, err := h.leaderboardService.GetLeaderboard(contestID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// GetTopScorer возвращает лучший результат конкурса
func (h *LeaderboardHandler) GetTopScorer(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	top, err := h.leaderboardService.GetTopScorer(contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(top))
}

// GetUserHistory возвращает историю попыток текущего пользователя,
// разделенную на завершенные и находящиеся в процессе.
// Администратор получает историю всех пользователей.
func (h *LeaderboardHandler) GetUserHistory(c *gin.Context) {
	policy := currentPolicy(c)

	if policy.CanViewAllHistories() {
		limit, offset := paginationParams(c)
		histories, total, err := h.leaderboardService.GetAllHistories(policy, limit, offset)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"histories": dto.NewListSubmissionResponse(histories),
			"total":     total,
		})
		return
	}

	userID := currentUserID(c)
	completed, inProgress, err := h.leaderboardService.GetUserHistory(policy, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     userID,
		"completed":   dto.NewListSubmissionResponse(completed),
		"in_progress": dto.NewListSubmissionResponse(inProgress),
	})
}

// DeleteResult удаляет результат из таблицы лидеров (только админ)
func (h *LeaderboardHandler) DeleteResult(c *gin.Context) {
	resultID := c.MustGet("resultID").(uint)

	if err := h.leaderboardService.DeleteResult(resultID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Result deleted successfully"})
}

// ExportResults выгружает результаты конкурса в формате XLSX (только админ)
func (h *LeaderboardHandler) ExportResults(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	contest, err := h.contestService.GetContestByID(contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	submissions, err := h.leaderboardService.GetAllResults(contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[LeaderboardHandler] Ошибка закрытия файла экспорта: %v", err)
		}
	}()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "User ID", "Name", "Email", "Score", "Submitted At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i := range submissions {
		sub := &submissions[i]
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sub.UserID)
		if sub.User != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sub.User.Name)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sub.User.Email)
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sub.Score)
		if sub.SubmittedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sub.SubmittedAt.Format("2006-01-02 15:04:05"))
		}
	}

	filename := fmt.Sprintf("contest_%d_results.xlsx", contest.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи файла экспорта: %v", err)
	}
}
