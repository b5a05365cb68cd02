package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
	"github.com/wedding-seating/go-seating-backend/internal/storage"
)

// maxBodyBytes caps PUT payloads at 2MB, matching the original deployment.
const maxBodyBytes = 2 << 20

// Handler serves the project read/write endpoints.
type Handler struct {
	store *storage.ProjectStore
}

func NewHandler(store *storage.ProjectStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) get(c *gin.Context) {
	projectID := domain.CleanProjectID(c.Param("projectId"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid project id"})
		return
	}

	p, err := h.store.Read(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("GET project failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to read project"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) put(c *gin.Context) {
	projectID := domain.CleanProjectID(c.Param("projectId"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid project id"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req putProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid payload"})
		return
	}

	saved, err := h.store.Write(c.Request.Context(), projectID, req.toProject())
	if err != nil {
		log.Printf("PUT project failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "updatedAt": saved.UpdatedAt})
}
