package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination читает limit и offset из query параметров с ограничениями.
func pagination(c *gin.Context) (limit, offset int) {
	limit = intQuery(c, "limit", 50)
	offset = intQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return
}

// intQuery читает целочисленный query параметр с запасным значением.
func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
