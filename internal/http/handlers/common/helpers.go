package common

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/geekpie/portfolio-backend/internal/http/middleware"
	"github.com/geekpie/portfolio-backend/internal/models"
)

// ErrUserNotInContext возвращается, когда в контексте нет данных токена.
var ErrUserNotInContext = errors.New("пользователь не найден в контексте")

// CurrentUserID извлекает идентификатор пользователя из gin.Context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUserNotInContext
	}

	return userID, nil
}

// CurrentUserRole извлекает роль пользователя из gin.Context.
func CurrentUserRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", ErrUserNotInContext
	}

	role, ok := raw.(string)
	if !ok {
		return "", ErrUserNotInContext
	}

	return role, nil
}

// IsStaff сообщает, авторизован ли запрос администратором или редактором.
// Работает и после OptionalAuth: анонимный запрос даёт false.
func IsStaff(c *gin.Context) bool {
	role, err := CurrentUserRole(c)
	return err == nil && (role == models.RoleAdmin || role == models.RoleEditor)
}
