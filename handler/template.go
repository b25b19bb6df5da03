package handler

import (
	"net/http"
	"strconv"

	"github.com/dondoffy/contract-copilot-canvas/middleware"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

const defaultPopularCount = 5

type TemplateHandler struct {
	catalog *service.CatalogService
}

func NewTemplateHandler(catalog *service.CatalogService) *TemplateHandler {
	return &TemplateHandler{catalog: catalog}
}

// List filters the catalog by ?search= and ?category=
func (h *TemplateHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", service.CategoryAll)
	c.JSON(http.StatusOK, gin.H{"templates": h.catalog.Filter(c.Query("search"), category)})
}

func (h *TemplateHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *TemplateHandler) Popular(c *gin.Context) {
	n := defaultPopularCount
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		n = parsed
	}
	c.JSON(http.StatusOK, gin.H{"templates": h.catalog.Popular(n)})
}

func (h *TemplateHandler) Get(c *gin.Context) {
	t, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) Select(c *gin.Context) {
	p, err := h.catalog.Select(middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *TemplateHandler) Use(c *gin.Context) {
	p, err := h.catalog.Use(c.Request.Context(), middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *TemplateHandler) Preview(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Preview(middleware.GetTenant(c)))
}

func (h *TemplateHandler) ClearPreview(c *gin.Context) {
	h.catalog.ClearPreview(middleware.GetTenant(c))
	c.Status(http.StatusNoContent)
}
