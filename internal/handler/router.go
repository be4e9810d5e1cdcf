package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pustaka-ai/pustaka/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Documents     *DocumentHandler
	Search        *SearchHandler
	Chat          *ChatHandler
	JWTSecret     []byte
	ChatRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/documents", deps.Documents.Upload)
	authGroup.GET("/documents", deps.Documents.List)
	authGroup.GET("/documents/:id", deps.Documents.Get)
	authGroup.GET("/documents/:id/chunks", deps.Documents.Chunks)
	authGroup.PUT("/documents/:id/metadata", deps.Documents.UpdateMetadata)
	authGroup.POST("/documents/:id/reprocess", deps.Documents.Reprocess)
	authGroup.DELETE("/documents/:id", deps.Documents.Delete)

	authGroup.POST("/search", deps.Search.Search)

	chatGroup := authGroup.Group("")
	if deps.ChatRateLimit > 0 {
		chatGroup.Use(middleware.RateLimit(deps.ChatRateLimit))
	}
	chatGroup.POST("/chat", deps.Chat.Chat)
	authGroup.GET("/conversations", deps.Chat.ListConversations)
	authGroup.GET("/conversations/:id/messages", deps.Chat.History)
}
