package http

import (
	"errors"
	"net/http"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AssistHandler struct {
	assistUseCase usecase.AssistUseCase
	logger        *logger.Logger
}

func NewAssistHandler(assistUseCase usecase.AssistUseCase, logger *logger.Logger) *AssistHandler {
	return &AssistHandler{
		assistUseCase: assistUseCase,
		logger:        logger,
	}
}

type CaptionRequest struct {
	Provider string `json:"provider" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
}

// GenerateCaption godoc
// @Summary      Generate a post caption
// @Description  Ask the AI assistant for a platform-tailored caption on a given topic.
// @Tags         assist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CaptionRequest true "Caption request"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /assist/caption [post]
func (h *AssistHandler) GenerateCaption(c *gin.Context) {
	var req CaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caption, err := h.assistUseCase.GenerateCaption(c.Request.Context(), req.Provider, req.Topic)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyTopic) || errors.Is(err, usecase.ErrInvalidProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Caption generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Caption generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"caption": caption})
}
