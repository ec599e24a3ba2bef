package controllers

import (
	"net/http"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"
	"webstar/terra-qualifier-worker/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ConversationController handles conversation transcript retrieval and deletion
type ConversationController struct {
	store *handlers.ConversationStoreHandler
}

// NewConversationController creates a new ConversationController instance
func NewConversationController(store *handlers.ConversationStoreHandler) *ConversationController {
	return &ConversationController{
		store: store,
	}
}

// GetConversation godoc
// @Summary      Retrieve a conversation transcript
// @Description  Returns the full transcript and status of a conversation
// @Tags         conversations
// @Produce      json
// @Param        id path string true "Conversation ID"
// @Success      200 {object} dto.ConversationResponse "Conversation transcript"
// @Failure      404 {object} dto.ErrorResponse "Conversation not found"
// @Router       /conversations/{id} [get]
func (ctrl *ConversationController) GetConversation(c *gin.Context) {
	conversationID := c.Param("id")

	// Snapshot: the live transcript may be appended to by a concurrent turn
	state, ok := ctrl.store.GetSnapshot(conversationID)
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Conversation not found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.ConversationResponse{
		ConversationID: conversationID,
		Messages:       state.Transcript,
		Status:         state.Status,
	})
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Removes a conversation and its transcript from the store
// @Tags         conversations
// @Produce      json
// @Param        id path string true "Conversation ID"
// @Success      200 {object} map[string]string "Deletion confirmation"
// @Failure      404 {object} dto.ErrorResponse "Conversation not found"
// @Router       /conversations/{id} [delete]
func (ctrl *ConversationController) DeleteConversation(c *gin.Context) {
	conversationID := c.Param("id")

	if !ctrl.store.Delete(conversationID) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Conversation not found",
		})
		return
	}

	metrics.ActiveConversations.Set(float64(ctrl.store.Count()))

	c.JSON(http.StatusOK, gin.H{
		"message":         "Conversation deleted",
		"conversation_id": conversationID,
	})
}
