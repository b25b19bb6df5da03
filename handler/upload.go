package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/dondoffy/contract-copilot-canvas/middleware"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service   *service.UploadService
	maxMemory int64
}

func NewUploadHandler(svc *service.UploadService, maxMemory int64) *UploadHandler {
	return &UploadHandler{service: svc, maxMemory: maxMemory}
}

// formFiles collects the files sent under "files" (repeated) or "file"
func formFiles(form *multipart.Form) []*multipart.FileHeader {
	headers := append([]*multipart.FileHeader(nil), form.File["files"]...)
	return append(headers, form.File["file"]...)
}

// Upload accepts one or more contract documents
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	headers := formFiles(c.Request.MultipartForm)
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	uploads := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			respondError(c, errors.Join(errors.New("failed to read file"), err))
			return
		}
		defer file.Close()

		uploads = append(uploads, service.FileUpload{
			Name: header.Filename,
			Size: header.Size,
			Type: header.Header.Get("Content-Type"),
			Body: file,
		})
	}

	files, err := h.service.Upload(c.Request.Context(), middleware.GetTenant(c), uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"files": files})
}

func (h *UploadHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"files": h.service.List(middleware.GetTenant(c))})
}

func (h *UploadHandler) Get(c *gin.Context) {
	f, err := h.service.Get(middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetStatus returns the processing status of a file
func (h *UploadHandler) GetStatus(c *gin.Context) {
	f, err := h.service.Get(middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        f.ID,
		"status":    f.Status,
		"error_msg": f.ErrorMsg,
	})
}

func (h *UploadHandler) Download(c *gin.Context) {
	url, err := h.service.DownloadURL(c.Request.Context(), middleware.GetTenant(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *UploadHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), middleware.GetTenant(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File removed"})
}
