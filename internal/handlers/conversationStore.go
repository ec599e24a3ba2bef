package handlers

import (
	"sync"

	"webstar/terra-qualifier-worker/internal/dto"
)

// ConversationStoreHandler keeps conversation state between turns. The
// qualifier core is stateless; this store is the only cross-call memory.
// Distinct conversations are independent, but turns within one conversation
// must be serialized: callers hold the per-conversation lock for the whole
// read-process-write cycle of a turn.
type ConversationStoreHandler struct {
	mu            sync.RWMutex
	conversations map[string]*dto.ConversationState
	locks         map[string]*sync.Mutex
}

// NewConversationStoreHandler creates an empty in-memory store
func NewConversationStoreHandler() *ConversationStoreHandler {
	return &ConversationStoreHandler{
		conversations: make(map[string]*dto.ConversationState),
		locks:         make(map[string]*sync.Mutex),
	}
}

// LockConversation acquires the lock serializing turns for one
// conversation and returns the unlock function
func (h *ConversationStoreHandler) LockConversation(conversationID string) func() {
	h.mu.Lock()
	lock, ok := h.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[conversationID] = lock
	}
	h.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Get returns the state for a conversation, or (nil, false) if unknown.
// The returned pointer is the live state: callers must hold the
// conversation lock while reading or writing it.
func (h *ConversationStoreHandler) Get(conversationID string) (*dto.ConversationState, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	state, ok := h.conversations[conversationID]
	return state, ok
}

// GetSnapshot returns a copy of the state taken under the conversation
// lock, for readers that run outside the turn cycle
func (h *ConversationStoreHandler) GetSnapshot(conversationID string) (*dto.ConversationState, bool) {
	h.mu.RLock()
	_, exists := h.conversations[conversationID]
	h.mu.RUnlock()
	if !exists {
		return nil, false
	}

	unlock := h.LockConversation(conversationID)
	defer unlock()

	state, ok := h.Get(conversationID)
	if !ok {
		return nil, false
	}
	return state.Snapshot(), true
}

// Save stores the state for a conversation
func (h *ConversationStoreHandler) Save(state *dto.ConversationState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conversations[state.ConversationID] = state
}

// Delete removes a conversation; returns false if it did not exist.
// It waits for any in-flight turn: removing the lock entry while the
// mutex is held would let a later LockConversation mint a second mutex
// and run two turns unserialized.
func (h *ConversationStoreHandler) Delete(conversationID string) bool {
	h.mu.Lock()
	if _, ok := h.conversations[conversationID]; !ok {
		h.mu.Unlock()
		return false
	}
	lock := h.locks[conversationID]
	h.mu.Unlock()

	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conversations[conversationID]; !ok {
		return false
	}
	delete(h.conversations, conversationID)
	delete(h.locks, conversationID)
	return true
}

// Count returns the number of stored conversations
func (h *ConversationStoreHandler) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conversations)
}
