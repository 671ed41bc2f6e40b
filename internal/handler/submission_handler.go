package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/handler/dto"
	"github.com/yourusername/contest-api/internal/service"
)

// SubmissionHandler обрабатывает запросы жизненного цикла попытки:
// участие, автосохранение прогресса, финализация
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler создает новый обработчик попыток
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Join обрабатывает запрос на участие в конкурсе. Идемпотентен:
// повторный вызов возвращает статус существующей попытки.
func (h *SubmissionHandler) Join(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	submission, err := h.submissionService.Join(currentUserID(c), contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contest joined",
		"status":  submission.Status,
	})
}

// AnswerEntry представляет один ответ в запросе автосохранения
type AnswerEntry struct {
	QuestionID uint     `json:"question_id" binding:"required"`
	Selected   []string `json:"selected" binding:"required"`
}

// SaveProgressRequest представляет запрос автосохранения прогресса
type SaveProgressRequest struct {
	Answers []AnswerEntry `json:"answers" binding:"required"`
}

// SaveProgress фиксирует переданные ответы в попытке. Уже зафиксированные
// ответы не перезаписываются; клиенту возвращается полный список
// заблокированных вопросов, чтобы отключить их редактирование.
func (h *SubmissionHandler) SaveProgress(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locked, err := h.submissionService.SaveProgress(currentUserID(c), contestID, answerMapFromRequest(req.Answers))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Progress saved successfully",
		"status":           entity.SubmissionStatusInProgress,
		"locked_questions": locked,
	})
}

// SubmitRequest представляет запрос на финализацию попытки
type SubmitRequest struct {
	Answers []AnswerEntry `json:"answers" binding:"required"`
}

// Submit финализирует попытку и возвращает замороженный счет
func (h *SubmissionHandler) Submit(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.submissionService.Submit(currentUserID(c), contestID, answerMapFromRequest(req.Answers))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contest submitted successfully",
		"score":   submission.Score,
	})
}

// GetMySubmission возвращает попытку текущего пользователя в конкурсе
func (h *SubmissionHandler) GetMySubmission(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	submission, err := h.submissionService.GetSubmission(currentUserID(c), contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(submission))
}

// answerMapFromRequest преобразует список ответов запроса в AnswerMap.
// При дубликатах question_id в одном запросе побеждает первый — то же
// правило, что и при слиянии с уже зафиксированными ответами.
func answerMapFromRequest(entries []AnswerEntry) entity.AnswerMap {
	answers := make(entity.AnswerMap, len(entries))
	for _, entry := range entries {
		if _, ok := answers[entry.QuestionID]; ok {
			continue
		}
		answers[entry.QuestionID] = entry.Selected
	}
	return answers
}
