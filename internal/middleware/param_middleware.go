package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam валидирует числовой параметр маршрута и кладет его
// в контекст Gin под ключом contextKey как uint. Обработчикам ниже по
// цепочке достаточно c.MustGet(contextKey).(uint) без повторного парсинга.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Parameter %q must be a positive integer", paramName),
				"error_type": "invalid_param",
			})
			c.Abort()
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
