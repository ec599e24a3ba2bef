package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"
	"webstar/terra-qualifier-worker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	reply string
}

func (s *stubChat) GenerateReply(_ context.Context, _ []dto.Turn) (string, error) {
	return s.reply, nil
}

type stubExtractor struct {
	fields *handlers.ExtractedFields
}

func (s *stubExtractor) ExtractFields(_ context.Context, _ []dto.Turn) (*handlers.ExtractedFields, error) {
	if s.fields == nil {
		return &handlers.ExtractedFields{}, nil
	}
	return s.fields, nil
}

func newTestRouter(extracted *handlers.ExtractedFields) (*gin.Engine, *handlers.ConversationStoreHandler) {
	gin.SetMode(gin.TestMode)

	store := handlers.NewConversationStoreHandler()
	processor := services.NewQualifierProcessor(
		&stubChat{reply: "Olá! Em qual bairro fica o terreno?"},
		&stubExtractor{fields: extracted},
		handlers.NewGeoValidator(),
	)

	chatController := NewChatController(processor, store, nil)
	conversationController := NewConversationController(store)

	router := gin.New()
	router.POST("/api/chat", chatController.Chat)
	router.GET("/api/conversations/:id", conversationController.GetConversation)
	router.DELETE("/api/conversations/:id", conversationController.DeleteConversation)
	return router, store
}

func postChat(t *testing.T, router *gin.Engine, body dto.ChatRequest) (*httptest.ResponseRecorder, dto.ChatResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.ChatResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestChat_MissingMessageReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestChat_InvalidJSONReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_NewConversationGetsGeneratedID(t *testing.T) {
	router, store := newTestRouter(nil)

	w, resp := postChat(t, router, dto.ChatRequest{Message: "Olá"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Olá! Em qual bairro fica o terreno?", resp.Response)
	assert.Equal(t, dto.StatusInProgress, resp.QualificationStatus)
	assert.Nil(t, resp.QualificationResult)

	_, ok := store.Get(resp.ConversationID)
	assert.True(t, ok)
}

func TestChat_ExistingConversationIDIsReused(t *testing.T) {
	router, store := newTestRouter(nil)

	_, first := postChat(t, router, dto.ChatRequest{Message: "Olá"})
	_, second := postChat(t, router, dto.ChatRequest{
		Message:        "Tenho um terreno",
		ConversationID: first.ConversationID,
	})

	assert.Equal(t, first.ConversationID, second.ConversationID)

	state, ok := store.Get(first.ConversationID)
	require.True(t, ok)
	assert.Equal(t, 2, state.TurnCount)
}

func TestChat_DisqualifyingTurnReturnsRecord(t *testing.T) {
	bairro := "Rio Tavares"
	router, _ := newTestRouter(&handlers.ExtractedFields{Bairro: &bairro})

	w, resp := postChat(t, router, dto.ChatRequest{Message: "Meu terreno fica no Rio Tavares"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.StatusComplete, resp.QualificationStatus)
	require.NotNil(t, resp.QualificationResult)
	assert.False(t, resp.QualificationResult.LeadQualified)
	assert.Equal(t, dto.NextStepDisqualified, resp.QualificationResult.NextStep)
}

func TestChat_ConcurrentTurnsAndReads(t *testing.T) {
	router, store := newTestRouter(nil)

	_, first := postChat(t, router, dto.ChatRequest{Message: "Olá"})
	conversationID := first.ConversationID

	// Turns and transcript reads on the same conversation race only if
	// a reader sees the live state; the race detector verifies both
	// paths go through snapshots or the conversation lock
	const turns = 20
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		body := []byte(`{"message": "mais uma mensagem", "conversation_id": "` + conversationID + `"}`)
		for i := 0; i < turns; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < turns; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+conversationID, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	}()

	wg.Wait()

	state, ok := store.Get(conversationID)
	require.True(t, ok)
	assert.Equal(t, turns+1, state.TurnCount)
}

func TestGetConversation(t *testing.T) {
	router, _ := newTestRouter(nil)

	_, chat := postChat(t, router, dto.ChatRequest{Message: "Olá"})

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+chat.ConversationID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ConversationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chat.ConversationID, resp.ConversationID)
	assert.Equal(t, dto.StatusInProgress, resp.Status)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, dto.SpeakerUser, resp.Messages[0].Speaker)
	assert.Equal(t, "Olá", resp.Messages[0].Text)
	assert.Equal(t, dto.SpeakerAgent, resp.Messages[1].Speaker)
}

func TestGetConversation_NotFound(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteConversation(t *testing.T) {
	router, store := newTestRouter(nil)

	_, chat := postChat(t, router, dto.ChatRequest{Message: "Olá"})

	req := httptest.NewRequest(http.MethodDelete, "/api/conversations/"+chat.ConversationID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, ok := store.Get(chat.ConversationID)
	assert.False(t, ok)
}

func TestDeleteConversation_NotFound(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/conversations/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
