package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"shopmate/backend/internal/agent"
	"shopmate/backend/internal/catalog"
	"shopmate/backend/internal/conversation"
	"shopmate/backend/internal/graph"
	"shopmate/backend/pkg/config"
)

// AppName and AppVersion identify the service in the root endpoint
const (
	AppName    = "shopmate"
	AppVersion = "1.0.0"
)

// Chatter runs a single chat turn
type Chatter interface {
	ProcessMessage(ctx context.Context, userID, message, callerContext string) (*agent.ChatResult, error)
}

// ProfileStore is the subset of graph operations the handlers need
type ProfileStore interface {
	UpsertProfile(ctx context.Context, userID string, profile graph.UserProfile) (*graph.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*graph.UserProfile, error)
	Recommendations(ctx context.Context, userID string) ([]string, error)
}

// ProductSearcher searches the product catalog
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}

// Pinger reports dependency reachability for the root endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router needs
type Deps struct {
	Config       *config.Config
	Orchestrator Chatter
	Profiles     ProfileStore
	Conversation *conversation.Log
	Catalog      ProductSearcher
	Graph        Pinger
	Logger       *zap.Logger
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	h := &handlers{deps: deps}

	router.GET("/", h.root)
	router.GET("/health", h.health)

	router.POST("/chat", h.chat)

	router.POST("/user/profile", h.upsertProfile)
	router.GET("/user/:user_id/profile", h.getProfile)
	router.GET("/user/:user_id/recommendations", h.recommendations)

	router.GET("/conversation/history", h.history)
	router.DELETE("/conversation/history", h.clearHistory)

	router.GET("/products/search", h.searchProducts)

	return router
}

// requestLogger is a custom logger middleware for Gin
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
