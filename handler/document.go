package handler

import (
	"net/http"

	"github.com/dondoffy/contract-copilot-canvas/middleware"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

type CreateDocumentRequest struct {
	Title string `json:"title"`
}

type VersionRequest struct {
	Version string `json:"version" binding:"required"`
}

type EditSectionRequest struct {
	Content *string `json:"content" binding:"required"`
	Save    bool    `json:"save"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	// an empty body creates an untitled draft
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}

	doc := h.service.Create(c.Request.Context(), middleware.GetTenant(c), req.Title)
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs := h.service.List(middleware.GetTenant(c))

	// Return without section content for list view
	result := make([]gin.H, len(docs))
	for i, doc := range docs {
		result[i] = gin.H{
			"id":             doc.ID,
			"title":          doc.Title,
			"active_version": doc.ActiveVersion,
			"sections":       len(doc.Sections),
			"issues":         len(doc.Issues),
			"created_at":     doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at":     doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	c.JSON(http.StatusOK, gin.H{"documents": result})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) SelectVersion(c *gin.Context) {
	var req VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := h.service.SelectVersion(middleware.GetTenant(c), c.Param("id"), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) EditSection(c *gin.Context) {
	var req EditSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := h.service.EditSection(c.Request.Context(), middleware.GetTenant(c), c.Param("id"), c.Param("section"), *req.Content, req.Save)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) AutoFill(c *gin.Context) {
	doc, filled, err := h.service.AutoFill(c.Request.Context(), middleware.GetTenant(c), c.Param("id"), c.Param("section"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filled": filled, "document": doc})
}

func (h *DocumentHandler) Save(c *gin.Context) {
	doc, err := h.service.Save(c.Request.Context(), middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetTenant(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
