package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/wedding-seating/go-seating-backend/internal/api/http"
	"github.com/wedding-seating/go-seating-backend/internal/api/http/middleware"
	seatinghttp "github.com/wedding-seating/go-seating-backend/internal/seating/http"
	"github.com/wedding-seating/go-seating-backend/internal/storage"
)

type RouterDeps struct {
	Store       *storage.ProjectStore
	CORSOrigins []string
	StaticDir   string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(corsMiddleware(dep.CORSOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.Store)
	healthHandler.RegisterRoutes(r)

	handler := seatinghttp.NewHandler(dep.Store)
	writeLimit := middleware.WriteRateLimit(10, 20)

	handler.Register(r.Group("/api/projects"), writeLimit)

	// Un-prefixed aliases for clients that skip the /api prefix.
	handler.Register(r.Group("/projects"), writeLimit)

	registerStatic(r, dep.StaticDir)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "PUT", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-Id"}
	return cors.New(cfg)
}

// registerStatic serves the built SPA when a dist directory is present,
// falling back to index.html for client-side routes.
func registerStatic(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}

	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			c.File(path)
			return
		}
		c.File(index)
	})
}
