package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geekpie/portfolio-backend/internal/generator"
)

// GenerateHandler запускает перегенерацию статического сайта.
type GenerateHandler struct {
	pipeline *generator.Pipeline
}

// NewGenerateHandler создаёт хэндлер генерации.
func NewGenerateHandler(pipeline *generator.Pipeline) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

// Generate обрабатывает POST /generate. Прогон синхронный, ответ содержит
// итог в формате админки: success, projectsGenerated, aiSectorsGenerated.
func (h *GenerateHandler) Generate(c *gin.Context) {
	result, err := h.pipeline.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
