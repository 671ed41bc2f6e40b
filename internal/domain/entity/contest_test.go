package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContest_Window(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	contest := &Contest{
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}

	// Act & Assert
	assert.True(t, contest.HasStarted(now), "Конкурс должен считаться начавшимся внутри окна")
	assert.False(t, contest.HasEnded(now), "Конкурс не должен считаться завершённым внутри окна")
	assert.True(t, contest.IsOpen(now), "Окно должно быть открыто")

	before := now.Add(-2 * time.Hour)
	assert.False(t, contest.HasStarted(before), "До StartTime конкурс ещё не начался")
	assert.False(t, contest.IsOpen(before))

	after := now.Add(2 * time.Hour)
	assert.True(t, contest.HasEnded(after), "После EndTime конкурс завершён")
	assert.False(t, contest.IsOpen(after))
}

func TestContest_Window_Boundaries(t *testing.T) {
	// Arrange: границы окна включительны
	start := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	contest := &Contest{StartTime: start, EndTime: end}

	// Act & Assert
	assert.True(t, contest.HasStarted(start), "Момент StartTime входит в окно")
	assert.False(t, contest.HasEnded(end), "Момент EndTime ещё входит в окно")
	assert.True(t, contest.IsOpen(start))
	assert.True(t, contest.IsOpen(end))
}

func TestContest_Window_Unbounded(t *testing.T) {
	// Arrange: нулевые границы означают отсутствие ограничения
	now := time.Now()
	contest := &Contest{}

	// Act & Assert
	assert.True(t, contest.HasStarted(now), "Нулевое StartTime не ограничивает снизу")
	assert.False(t, contest.HasEnded(now), "Нулевое EndTime не ограничивает сверху")
	assert.True(t, contest.IsOpen(now))
}

func TestContest_IsVIP(t *testing.T) {
	assert.True(t, (&Contest{Type: ContestTypeVIP}).IsVIP())
	assert.False(t, (&Contest{Type: ContestTypeNormal}).IsVIP())
}

func TestContest_TableName(t *testing.T) {
	assert.Equal(t, "contests", Contest{}.TableName())
}
