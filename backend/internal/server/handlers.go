package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"shopmate/backend/internal/graph"
	apperrors "shopmate/backend/pkg/errors"
)

type handlers struct {
	deps Deps
}

// chatRequest is the POST /chat body
type chatRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"user_id"`
	Context string `json:"context"`
}

// profileRequest is the POST /user/profile body
type profileRequest struct {
	UserID      string             `json:"user_id" binding:"required"`
	ProfileData *graph.UserProfile `json:"profile_data" binding:"required"`
}

func (h *handlers) root(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	neo4jConnected := false
	if h.deps.Graph != nil {
		neo4jConnected = h.deps.Graph.Ping(ctx) == nil
	}

	c.JSON(http.StatusOK, gin.H{
		"app":             AppName,
		"version":         AppVersion,
		"status":          "running",
		"groq_configured": h.deps.Config != nil && h.deps.Config.GroqAPIKey != "",
		"neo4j_connected": neo4jConnected,
	})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.deps.Orchestrator.ProcessMessage(c.Request.Context(), req.UserID, req.Message, req.Context)
	if err != nil {
		h.writeError(c, "Failed to process message", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) upsertProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.deps.Profiles.UpsertProfile(c.Request.Context(), req.UserID, *req.ProfileData)
	if err != nil {
		h.writeError(c, "Failed to upsert profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile created/updated successfully",
		"user_id": req.UserID,
		"profile": stored,
	})
}

func (h *handlers) getProfile(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := h.deps.Profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "Failed to fetch profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"profile": profile,
	})
}

func (h *handlers) recommendations(c *gin.Context) {
	userID := c.Param("user_id")

	items, err := h.deps.Profiles.Recommendations(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "Failed to fetch recommendations", err)
		return
	}
	if items == nil {
		items = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         userID,
		"recommendations": items,
	})
}

func (h *handlers) history(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"conversation_history": h.deps.Conversation.History(),
	})
}

func (h *handlers) clearHistory(c *gin.Context) {
	h.deps.Conversation.Clear()
	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation history cleared successfully",
	})
}

func (h *handlers) searchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	products, err := h.deps.Catalog.Search(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, "Failed to search products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"products": products,
	})
}

// writeError maps taxonomy errors to HTTP statuses: validation 400, not-found
// 404, LLM/catalog 502, graph 503, anything else 500.
func (h *handlers) writeError(c *gin.Context, msg string, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeLLM):
		h.deps.Logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeCatalog):
		h.deps.Logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeGraph):
		h.deps.Logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.deps.Logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
