package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/geekpie/portfolio-backend/internal/http/response"
	"github.com/geekpie/portfolio-backend/internal/logger"
	"github.com/geekpie/portfolio-backend/internal/mailer"
	"github.com/geekpie/portfolio-backend/internal/validation"
)

// ContactHandler обслуживает контактную форму и подписку на новости.
type ContactHandler struct {
	mailer *mailer.Mailer
}

// NewContactHandler создаёт хэндлер.
func NewContactHandler(mailer *mailer.Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// Contact обрабатывает POST /contact.
func (h *ContactHandler) Contact(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректное тело запроса")
		return
	}

	if fieldErrs := validation.ValidateContactForm(req.Name, req.Email, req.Message); len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	if err := h.mailer.SendContactMessage(req.Name, req.Email, req.Subject, req.Message); err != nil {
		logger.Log.WithError(err).Error("contact handler: отправка сообщения")
		response.Internal(c, "не удалось отправить сообщение, попробуйте позже")
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// Newsletter обрабатывает POST /newsletter.
func (h *ContactHandler) Newsletter(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректное тело запроса")
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.mailer.SendNewsletterConfirmation(req.Email); err != nil {
		logger.Log.WithError(err).Error("contact handler: подтверждение подписки")
		response.Internal(c, "не удалось оформить подписку, попробуйте позже")
		return
	}

	response.Success(c, gin.H{"subscribed": true})
}
