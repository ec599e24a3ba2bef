package controllers

import (
	"log"
	"net/http"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"
	"webstar/terra-qualifier-worker/internal/metrics"
	"webstar/terra-qualifier-worker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatController handles the qualification chat endpoint
type ChatController struct {
	processor *services.QualifierProcessor
	store     *handlers.ConversationStoreHandler
	supabase  *handlers.SupabaseHandler // optional archive, may be nil
}

// NewChatController creates a new ChatController instance
func NewChatController(processor *services.QualifierProcessor, store *handlers.ConversationStoreHandler, supabase *handlers.SupabaseHandler) *ChatController {
	return &ChatController{
		processor: processor,
		store:     store,
		supabase:  supabase,
	}
}

// Chat godoc
// @Summary      Send a chat message to the Terra qualifier
// @Description  Processes one conversation turn: generates the concierge reply, extracts qualification fields and returns the terminal record once the conversation completes
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body dto.ChatRequest true "User message and optional conversation ID"
// @Success      200 {object} dto.ChatResponse "Agent reply and qualification progress"
// @Failure      400 {object} dto.ErrorResponse "Bad request - validation error"
// @Router       /chat [post]
func (ctrl *ChatController) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	// Serialize turns within this conversation: the processor
	// reads-then-writes the full state with no internal locking
	unlock := ctrl.store.LockConversation(conversationID)
	defer unlock()

	state, ok := ctrl.store.Get(conversationID)
	if !ok {
		state = dto.NewConversationState(conversationID)
		log.Printf("[ChatController] New conversation started: %s", conversationID)
	}
	wasComplete := state.Status == dto.StatusComplete

	result := ctrl.processor.ProcessTurn(c.Request.Context(), state, req.Message)

	ctrl.store.Save(state)
	metrics.ActiveConversations.Set(float64(ctrl.store.Count()))

	if ctrl.supabase != nil && !wasComplete {
		// The goroutine outlives the conversation lock, so it gets a
		// snapshot, never the live state the next turn mutates. The
		// argument is evaluated here, while the lock is still held.
		go ctrl.archive(state.Snapshot(), result)
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		Response:            result.Reply,
		ConversationID:      conversationID,
		QualificationStatus: result.Status,
		QualificationResult: result.Record,
	})
}

// archive persists the transcript and, on completion, the qualification
// record. Archive failures are logged and never affect the chat response.
func (ctrl *ChatController) archive(state *dto.ConversationState, result *services.TurnResult) {
	if err := ctrl.supabase.UpsertConversation(state); err != nil {
		log.Printf("[ChatController] Failed to archive conversation %s: %v", state.ConversationID, err)
	}
	if result.Status == dto.StatusComplete && result.Record != nil {
		if _, err := ctrl.supabase.InsertQualification(state.ConversationID, result.Record); err != nil {
			log.Printf("[ChatController] Failed to archive qualification for %s: %v", state.ConversationID, err)
		}
	}
}
