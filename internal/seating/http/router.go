package http

import "github.com/gin-gonic/gin"

// Register attaches the project routes to the given router group. Guards are
// applied to the write path only; reads stay unthrottled.
func (h *Handler) Register(rg *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	rg.GET("/:projectId", h.get)
	rg.PUT("/:projectId", append(writeGuards, h.put)...)
}
