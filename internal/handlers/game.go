package handlers

import (
	"net/http"

	"howyouknow-backend/internal/models"
	"howyouknow-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) StartGame(c *gin.Context) {
	userID := c.GetString("user_id")

	state, err := h.gameService.StartGame(userID)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *GameHandler) GetState(c *gin.Context) {
	state, err := h.gameService.GetState(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

type SelectAnswerRequest struct {
	Answer AnswerValueRequest `json:"answer" binding:"required"`
}

func (h *GameHandler) SelectAnswer(c *gin.Context) {
	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.SelectAnswer(c.Param("id"), c.GetString("user_id"), req.Answer.toValue()); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "answer selected"})
}

type HintResponse struct {
	Options []string `json:"options,omitempty"`
	Used    bool     `json:"used"`
}

func (h *GameHandler) UseHint(c *gin.Context) {
	options, used, err := h.gameService.UseHint(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, HintResponse{Options: options, Used: used})
}

type SubmitAnswerRequest struct {
	QuestionID string              `json:"question_id" binding:"required"`
	Answer     *AnswerValueRequest `json:"answer"`
}

func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	value := models.NoAnswer()
	if req.Answer != nil {
		value = req.Answer.toValue()
	}

	result, err := h.gameService.SubmitAnswer(c.Param("id"), c.GetString("user_id"), req.QuestionID, value)
	if err != nil && result == nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	// A result with a non-nil error means a side write failed after the
	// answer was persisted; the client still gets the outcome.
	c.JSON(http.StatusOK, result)
}

type RetryRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

func (h *GameHandler) ResolveRetry(c *gin.Context) {
	var req RetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.gameService.ResolveRetry(c.Param("id"), c.GetString("user_id"), *req.Accept)
	if err != nil && result == nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) Abandon(c *gin.Context) {
	if err := h.gameService.Abandon(c.Param("id"), c.GetString("user_id")); err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "session abandoned"})
}

func (h *GameHandler) ListSessions(c *gin.Context) {
	userID := c.GetString("user_id")

	sessions, err := h.gameService.ListSessions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessions)
}
