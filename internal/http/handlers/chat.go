package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// POST /chat/message
// body: { "message": "...", "conversation_id": "..." (optional) }
func (ch *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		Message        string  `json:"message"`
		ConversationID *string `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var convID *uuid.UUID
	if req.ConversationID != nil && *req.ConversationID != "" {
		parsed, err := uuid.Parse(*req.ConversationID)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_conversation_id", err)
			return
		}
		convID = &parsed
	}

	exchange, err := ch.chatService.SendMessage(c.Request.Context(), currentUserID(c), convID, req.Message)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "chat_failed")
		return
	}
	response.RespondOK(c, exchange)
}

// GET /chat/conversations
func (ch *ChatHandler) ListConversations(c *gin.Context) {
	conversations, err := ch.chatService.ListConversations(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "conversations_failed")
		return
	}
	response.RespondOK(c, gin.H{"conversations": conversations})
}

// GET /chat/conversations/:id/messages
func (ch *ChatHandler) ConversationMessages(c *gin.Context) {
	convID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_conversation_id", err)
		return
	}
	messages, err := ch.chatService.ConversationMessages(c.Request.Context(), currentUserID(c), convID)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "messages_failed")
		return
	}
	response.RespondOK(c, gin.H{"messages": messages})
}
