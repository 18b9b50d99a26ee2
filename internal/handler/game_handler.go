package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/aptitude-api/internal/pkg/errors"
	"github.com/yourusername/aptitude-api/internal/service"
)

// GameHandler обрабатывает запросы дневного игрового цикла
type GameHandler struct {
	dailyService   *service.DailyService
	attemptService *service.AttemptService
}

// NewGameHandler создает новый игровой обработчик
func NewGameHandler(dailyService *service.DailyService, attemptService *service.AttemptService) *GameHandler {
	return &GameHandler{
		dailyService:   dailyService,
		attemptService: attemptService,
	}
}

// GetDailyQuestions возвращает дневной набор вопросов пользователя,
// при необходимости запуская выдачу. Если набор еще не готов,
// возвращает 503 с Retry-After: клиент опрашивает /daily/status.
func (h *GameHandler) GetDailyQuestions(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	result, err := h.dailyService.GetDailyQuestions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotReady) {
			c.Header("Retry-After", "3")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":      "Daily questions are being prepared. Please retry shortly.",
				"error_type": "not_ready",
			})
			return
		}
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDailyStatus возвращает прогресс подготовки дневного набора
func (h *GameHandler) GetDailyStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	status, err := h.dailyService.GetStatus(userID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// SubmitAnswerRequest представляет запрос на отправку ответа
type SubmitAnswerRequest struct {
	SelectedIndex *int `json:"selected_index" binding:"required"`
}

// SubmitAnswer обрабатывает ответ пользователя на вопрос
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	questionID, ok := parseQuestionID(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attemptService.SubmitAnswer(userID, questionID, *req.SelectedIndex)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UseHint выдает подсказку по вопросу (штраф списывается один раз)
func (h *GameHandler) UseHint(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	questionID, ok := parseQuestionID(c)
	if !ok {
		return
	}

	result, err := h.attemptService.UseHint(userID, questionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GiveUp фиксирует отказ пользователя от вопроса
func (h *GameHandler) GiveUp(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	questionID, ok := parseQuestionID(c)
	if !ok {
		return
	}

	result, err := h.attemptService.GiveUp(userID, questionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseQuestionID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAttemptFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "attempt_finished"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotReady):
		c.Header("Retry-After", "3")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "error_type": "not_ready"})
	default:
		log.Printf("ERROR: Internal server error in GameHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
