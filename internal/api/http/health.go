package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	OK      bool      `json:"ok"`
	Storage string    `json:"storage"`
	Now     time.Time `json:"now"`
}

// StorageModer reports whether writes reach a durable backend.
type StorageModer interface {
	Mode() string
}

type HealthHandler struct {
	storage StorageModer
}

func NewHealthHandler(storage StorageModer) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		OK:      true,
		Storage: h.storage.Mode(),
		Now:     time.Now().UTC(),
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/api/health", h.HealthCheck)
}
