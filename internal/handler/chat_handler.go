package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pustaka-ai/pustaka/internal/pkg/errcode"
	"github.com/pustaka-ai/pustaka/internal/pkg/response"
	"github.com/pustaka-ai/pustaka/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	ConversationID int64  `json:"conversation_id"`
	Message        string `json:"message"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.chat.Chat(c.Request.Context(), getUserID(c), req.ConversationID, req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs, err := h.chat.ListConversations(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"conversations": convs})
}

func (h *ChatHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	messages, err := h.chat.History(c.Request.Context(), getUserID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"messages": messages})
}
