package handlers

import (
	"net/http"

	"howyouknow-backend/internal/models"
	"howyouknow-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type AnswerValueRequest struct {
	Kind  string   `json:"kind" binding:"required,oneof=none text choice sequence"`
	Text  string   `json:"text"`
	Items []string `json:"items"`
}

func (r AnswerValueRequest) toValue() models.AnswerValue {
	return models.AnswerValue{Kind: r.Kind, Text: r.Text, Items: r.Items}
}

type MediaRequest struct {
	Type         string `json:"type" binding:"omitempty,oneof=image video audio"`
	URI          string `json:"uri" binding:"required"`
	ThumbnailURI string `json:"thumbnail_uri"`
}

type CreateQuestionRequest struct {
	Text          string             `json:"text" binding:"required"`
	Type          string             `json:"type" binding:"required,oneof=multiple_choice yes_no open ranking survey"`
	Options       []string           `json:"options"`
	CorrectAnswer AnswerValueRequest `json:"correct_answer" binding:"required"`
	Media         []MediaRequest     `json:"media"`
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	input := services.CreateQuestionInput{
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer.toValue(),
	}
	for _, m := range req.Media {
		input.Media = append(input.Media, services.MediaInput{
			Type:         m.Type,
			URI:          m.URI,
			ThumbnailURI: m.ThumbnailURI,
		})
	}

	question, err := h.questionService.CreateQuestion(userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) ListMyQuestions(c *gin.Context) {
	userID := c.GetString("user_id")

	questions, err := h.questionService.ListMyQuestions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID := c.GetString("user_id")
	questionID := c.Param("id")

	if err := h.questionService.DeleteQuestion(questionID, userID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}
