// Package scoring содержит чистый движок подсчета очков конкурса.
// Функции пакета детерминированы и не имеют побочных эффектов.
package scoring

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// Calculate подсчитывает счет по набору вопросов конкурса и карте ответов.
// За каждый вопрос начисляется ровно один балл, если ответ правильный:
//   - MULTI: множество выбранных опций в точности совпадает с множеством
//     правильных (надмножества и подмножества не засчитываются);
//   - SINGLE: первый выбранный вариант совпадает с первым правильным,
//     лишние элементы выбора игнорируются.
//
// Вопросы без ответа дают 0 баллов и не являются ошибкой.
func Calculate(questions []entity.Question, answers entity.AnswerMap) int {
	score := 0
	for i := range questions {
		q := &questions[i]
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		if q.Evaluate(selected) {
			score++
		}
	}
	return score
}
