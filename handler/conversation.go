package handler

import (
	"net/http"

	"github.com/dondoffy/contract-copilot-canvas/middleware"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	service *service.ConversationService
}

func NewConversationHandler(svc *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

type SubmitRequest struct {
	Text string `json:"text"`
}

func (h *ConversationHandler) Create(c *gin.Context) {
	conv := h.service.Create(c.Request.Context(), middleware.GetTenant(c))
	c.JSON(http.StatusCreated, conv)
}

func (h *ConversationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conversations": h.service.List(middleware.GetTenant(c))})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.service.Get(middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// Submit appends the user's message; the assistant reply arrives later
func (h *ConversationHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	conv, err := h.service.Submit(c.Request.Context(), middleware.GetTenant(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, conv)
}

func (h *ConversationHandler) Reset(c *gin.Context) {
	conv, err := h.service.Reset(c.Request.Context(), middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetTenant(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted"})
}
