package dto

// ChatRequest represents the incoming chat request body
// @Description Chat request carrying one user message
type ChatRequest struct {
	// User message for this turn
	Message string `json:"message" binding:"required" example:"Tenho um terreno no Campeche, 450m², por 850 mil"`
	// Conversation ID; omit to start a new conversation
	ConversationID string `json:"conversation_id" example:"a3bb189e-8bf9-3888-9912-ace4e6543002"`
}

// ChatResponse represents the chat endpoint response
// @Description Agent reply plus qualification progress for one turn
type ChatResponse struct {
	// Agent reply text for this turn
	Response string `json:"response"`
	// Conversation ID to resend on the next turn
	ConversationID string `json:"conversation_id"`
	// "in_progress" or "complete"
	QualificationStatus ConversationStatus `json:"qualification_status"`
	// Terminal qualification record, present only when complete
	QualificationResult *QualificationRecord `json:"qualification_result,omitempty"`
}

// ConversationResponse represents a stored conversation transcript
// @Description Conversation transcript and status
type ConversationResponse struct {
	// Conversation ID
	ConversationID string `json:"conversation_id"`
	// Ordered transcript turns
	Messages []Turn `json:"messages"`
	// "in_progress" or "complete"
	Status ConversationStatus `json:"status"`
}

// ErrorResponse represents an error response
// @Description Error response returned when a request fails
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error" example:"Key: 'ChatRequest.Message' Error:Field validation for 'Message' failed on the 'required' tag"`
}
