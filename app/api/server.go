package api

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ServerOptions carries the access and throttling settings for the router.
type ServerOptions struct {
	APIAccessKey string
	RateLimit    float64
	RateBurst    int
}

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, options ServerOptions) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, options)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, options ServerOptions) {
	limited := rateLimitMiddleware(options.RateLimit, options.RateBurst)

	posts := r.Group("/api/blog-posts")
	posts.Use(limited)
	{
		posts.GET("", handler.GetBlogPosts)
		posts.GET("/export", handler.ExportBlogPosts)
		posts.GET("/:slug", handler.GetBlogPost)
		posts.GET("/:slug/content", handler.GetBlogPostContent)
	}

	r.GET("/feed.xml", limited, handler.GetRSSFeed)
	r.GET("/health", handler.GetHealth)

	// Admin endpoints (conditionally enabled with authentication)
	if options.APIAccessKey != "" {
		admin := r.Group("/api/publications")
		admin.Use(authMiddleware(options.APIAccessKey))
		{
			admin.GET("", handler.APIListPublications)
			admin.POST("/refresh", handler.APIRefreshPublications)
		}
		slog.Info("Admin API endpoints enabled with authentication")
	} else {
		slog.Info("Admin API endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"posts":   "/api/blog-posts",
			"post":    "/api/blog-posts/<slug>",
			"content": "/api/blog-posts/<slug>/content",
			"export":  "/api/blog-posts/export?format=csv|xlsx",
			"feed":    "/feed.xml",
			"health":  "/health",
		}

		if options.APIAccessKey != "" {
			endpoints["publications"] = "/api/publications (requires X-API-Key header)"
			endpoints["refresh"] = "/api/publications/refresh (POST, requires X-API-Key header)"
		}

		c.JSON(http.StatusOK, gin.H{
			"service":     "Blog Comb",
			"description": "Blog posts published from the content calendar spreadsheet",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"enabled":       options.APIAccessKey != "",
				"auth_required": options.APIAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiAccessKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			return
		}

		c.Next()
	}
}
