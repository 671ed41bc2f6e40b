package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/handler/dto"
	"github.com/yourusername/contest-api/internal/service"
)

// ContestHandler обрабатывает запросы, связанные с конкурсами
type ContestHandler struct {
	contestService    *service.ContestService
	submissionService *service.SubmissionService
}

// NewContestHandler создает новый обработчик конкурсов
func NewContestHandler(
	contestService *service.ContestService,
	submissionService *service.SubmissionService,
) *ContestHandler {
	return &ContestHandler{
		contestService:    contestService,
		submissionService: submissionService,
	}
}

// CreateContestRequest представляет запрос на создание конкурса
type CreateContestRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=100"`
	Description string    `json:"description" binding:"omitempty,max=500"`
	Type        string    `json:"type" binding:"omitempty,oneof=NORMAL VIP"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Prize       string    `json:"prize" binding:"omitempty,max=255"`
}

// CreateContest обрабатывает запрос на создание конкурса (только админ)
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contest, err := h.contestService.CreateContest(req.Name, req.Description, req.Type, req.Prize, req.StartTime, req.EndTime)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContestResponse(contest, false))
}

// GetContests возвращает список конкурсов, видимых текущей роли.
// Для аутентифицированных пользователей в каждый конкурс добавляется
// статус их попытки (not-started, если попытки нет).
func (h *ContestHandler) GetContests(c *gin.Context) {
	limit, offset := paginationParams(c)

	policy := currentPolicy(c)
	contests, total, err := h.contestService.ListContests(policy, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var statuses map[uint]string
	if userID := currentUserID(c); userID != 0 {
		statuses, err = h.submissionService.StatusByContest(userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": dto.NewListContestResponse(contests, statuses),
		"total":    total,
	})
}

// GetContest возвращает информацию о конкурсе
func (h *ContestHandler) GetContest(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint) // Получаем из контекста

	contest, err := h.contestService.GetContestByID(contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContestResponse(contest, false))
}

// GetContestQuestions возвращает вопросы конкурса.
// Правильные ответы включаются только для администраторов.
func (h *ContestHandler) GetContestQuestions(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	questions, err := h.contestService.GetContestQuestions(contestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	includeAnswers := isAdmin(c)
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, dto.NewQuestionResponse(&questions[i], includeAnswers))
	}

	c.JSON(http.StatusOK, gin.H{"questions": responses})
}

// AddQuestionsRequest представляет запрос на добавление вопросов
type AddQuestionsRequest struct {
	Questions []struct {
		Text           string   `json:"text" binding:"required,min=3,max=500"`
		Type           string   `json:"type" binding:"omitempty,oneof=SINGLE MULTI"`
		Options        []string `json:"options" binding:"required,min=2,max=10"`
		CorrectAnswers []string `json:"correct_answers" binding:"required,min=1"`
	} `json:"questions" binding:"required,min=1"`
}

// AddQuestions обрабатывает запрос на добавление вопросов к конкурсу (только админ)
func (h *ContestHandler) AddQuestions(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	var req AddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Преобразуем данные в формат для сервиса
	questions := make([]entity.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, entity.Question{
			Text:           q.Text,
			Type:           q.Type,
			Options:        q.Options,
			CorrectAnswers: q.CorrectAnswers,
		})
	}

	if err := h.contestService.AddQuestions(contestID, questions); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Questions added successfully", "count": len(questions)})
}

// DeleteQuestion удаляет вопрос (только админ)
func (h *ContestHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.contestService.DeleteQuestion(questionID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// DeleteContest удаляет конкурс (только админ)
func (h *ContestHandler) DeleteContest(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	if err := h.contestService.DeleteContest(contestID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contest deleted successfully"})
}

// paginationParams извлекает limit/offset из query-параметров
func paginationParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
