package handlers

import (
	"net/http"

	"howyouknow-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PairingHandler struct {
	pairingService *services.PairingService
}

func NewPairingHandler(pairingService *services.PairingService) *PairingHandler {
	return &PairingHandler{pairingService: pairingService}
}

type ConnectRequest struct {
	Code string `json:"code" binding:"required,min=4,max=8"`
}

func (h *PairingHandler) Connect(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.pairingService.ConnectWithCode(userID, req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *PairingHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.pairingService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
