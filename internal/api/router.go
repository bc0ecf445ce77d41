package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter initializes and configures the Gin router.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default() // Logger and Recovery middleware included

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(config))
	r.Use(RequestID())

	registerRoutes(r, h)
	return r
}

func registerRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", HealthCheckHandler)
	r.GET("/status", h.StatusHandler)

	links := r.Group("/links")
	{
		links.POST("", h.CreateLinkHandler)
		links.POST("/batch", h.BatchCreateHandler)
		links.GET("/:code", h.LookupHandler)
	}

	r.GET("/:code", h.RedirectHandler)
}

// RequestID tags each request with an ID, reusing the caller's if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
