package dto

import (
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильные ответы включаются только для администраторов.
type QuestionResponse struct {
	ID             uint      `json:"id"`
	ContestID      uint      `json:"contest_id"`
	Text           string    `json:"text"`
	Type           string    `json:"type"`
	Options        []string  `json:"options"`
	CorrectAnswers []string  `json:"correct_answers,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContestResponse представляет конкурс в формате для ответа клиенту
type ContestResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Type          string             `json:"type"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	Prize         string             `json:"prize,omitempty"`
	QuestionCount int                `json:"question_count"`
	Status        string             `json:"status,omitempty"` // Статус попытки текущего пользователя
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewQuestionResponse создает DTO для вопроса.
// includeAnswers = true оставляет правильные ответы в ответе (только админ).
func NewQuestionResponse(q *entity.Question, includeAnswers bool) QuestionResponse {
	resp := QuestionResponse{
		ID:        q.ID,
		ContestID: q.ContestID,
		Text:      q.Text,
		Type:      q.Type,
		Options:   q.Options,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if includeAnswers {
		resp.CorrectAnswers = q.CorrectAnswers
	}
	return resp
}

// NewContestResponse создает DTO для конкурса
func NewContestResponse(contest *entity.Contest, includeAnswers bool) *ContestResponse {
	resp := &ContestResponse{
		ID:            contest.ID,
		Name:          contest.Name,
		Description:   contest.Description,
		Type:          contest.Type,
		StartTime:     contest.StartTime,
		EndTime:       contest.EndTime,
		Prize:         contest.Prize,
		QuestionCount: contest.QuestionCount,
		CreatedAt:     contest.CreatedAt,
		UpdatedAt:     contest.UpdatedAt,
	}
	for i := range contest.Questions {
		resp.Questions = append(resp.Questions, NewQuestionResponse(&contest.Questions[i], includeAnswers))
	}
	return resp
}

// NewListContestResponse создает DTO для списка конкурсов со статусами попыток.
// statuses может быть nil (гость) — тогда поле Status не заполняется.
func NewListContestResponse(contests []entity.Contest, statuses map[uint]string) []*ContestResponse {
	responses := make([]*ContestResponse, 0, len(contests))
	for i := range contests {
		resp := NewContestResponse(&contests[i], false)
		if statuses != nil {
			status, ok := statuses[contests[i].ID]
			if !ok {
				status = entity.SubmissionStatusNotStarted
			}
			resp.Status = status
		}
		responses = append(responses, resp)
	}
	return responses
}
