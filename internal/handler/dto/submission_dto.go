package dto

import (
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// SubmissionResponse представляет попытку в формате для ответа клиенту
type SubmissionResponse struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"user_id"`
	ContestID   uint             `json:"contest_id"`
	Status      string           `json:"status"`
	Score       *int             `json:"score,omitempty"` // Присутствует только после финализации
	Answers     entity.AnswerMap `json:"answers,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	LastSavedAt *time.Time       `json:"last_saved_at,omitempty"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`

	Contest *ContestResponse `json:"contest,omitempty"`
	User    *UserResponse    `json:"user,omitempty"`
}

// NewSubmissionResponse создает DTO для попытки
func NewSubmissionResponse(s *entity.Submission) *SubmissionResponse {
	resp := &SubmissionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		ContestID:   s.ContestID,
		Status:      s.Status,
		Answers:     s.Answers,
		StartedAt:   s.StartedAt,
		LastSavedAt: s.LastSavedAt,
		SubmittedAt: s.SubmittedAt,
	}
	if s.IsSubmitted() {
		score := s.Score
		resp.Score = &score
	}
	if s.Contest != nil {
		resp.Contest = NewContestResponse(s.Contest, false)
	}
	if s.User != nil {
		resp.User = NewUserResponse(s.User)
	}
	return resp
}

// NewListSubmissionResponse создает DTO для списка попыток
func NewListSubmissionResponse(submissions []entity.Submission) []*SubmissionResponse {
	responses := make([]*SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, NewSubmissionResponse(&submissions[i]))
	}
	return responses
}
