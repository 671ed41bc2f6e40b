package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// ============================================================================
// Request validation tests — не требуют реального SubmissionService
// Handler возвращает 400 до вызова сервиса
// ============================================================================

func TestSaveProgress_ValidationErrors(t *testing.T) {
	handler := &SubmissionHandler{} // nil service — OK для validation tests

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing answers",
			body: map[string]interface{}{},
		},
		{
			name: "answer without question_id",
			body: map[string]interface{}{
				"answers": []map[string]interface{}{
					{"selected": []string{"A"}},
				},
			},
		},
		{
			name: "answer without selected",
			body: map[string]interface{}{
				"answers": []map[string]interface{}{
					{"question_id": 1},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPut, "/api/contests/1/progress", tc.body)
			c.Set("contestID", uint(1))

			handler.SaveProgress(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	handler := &SubmissionHandler{}

	c, w := newTestGinContext(http.MethodPost, "/api/contests/1/submit", nil)
	c.Set("contestID", uint(1))

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// answerMapFromRequest
// ============================================================================

func TestAnswerMapFromRequest(t *testing.T) {
	// Arrange
	entries := []AnswerEntry{
		{QuestionID: 1, Selected: []string{"A"}},
		{QuestionID: 2, Selected: []string{"B", "C"}},
	}

	// Act
	answers := answerMapFromRequest(entries)

	// Assert
	require.Len(t, answers, 2)
	assert.Equal(t, entity.StringArray{"A"}, answers[1])
	assert.Equal(t, entity.StringArray{"B", "C"}, answers[2])
}

func TestAnswerMapFromRequest_FirstDuplicateWins(t *testing.T) {
	// Arrange: дубликаты question_id в одном запросе
	entries := []AnswerEntry{
		{QuestionID: 1, Selected: []string{"A"}},
		{QuestionID: 1, Selected: []string{"B"}},
	}

	// Act
	answers := answerMapFromRequest(entries)

	// Assert: побеждает первый — то же правило, что и при фиксации
	require.Len(t, answers, 1)
	assert.Equal(t, entity.StringArray{"A"}, answers[1])
}

func TestAnswerMapFromRequest_Empty(t *testing.T) {
	answers := answerMapFromRequest(nil)
	assert.NotNil(t, answers)
	assert.Empty(t, answers)
}

// ============================================================================
// handleServiceError
// ============================================================================

func TestHandleServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"invalid state", apperrors.ErrInvalidState, http.StatusConflict},
		{"already submitted", apperrors.ErrAlreadySubmitted, http.StatusConflict},
		{"contest not started", apperrors.ErrContestNotStarted, http.StatusConflict},
		{"contest closed", apperrors.ErrContestClosed, http.StatusConflict},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodGet, "/", nil)

			handleServiceError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
