package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/geekpie/portfolio-backend/internal/http/response"
	"github.com/geekpie/portfolio-backend/internal/service"
)

// SeedHandler наполняет базу тестовыми данными. Подключается только
// в development окружении.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler создаёт хэндлер сидирования.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed обрабатывает POST /seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	admin, created, err := h.seed.SeedData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"admin": gin.H{
			"email":    admin.Email,
			"password": service.SeedAdminPassword,
		},
		"projectsCreated": created,
	})
}
