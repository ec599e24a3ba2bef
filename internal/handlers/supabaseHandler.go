package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"webstar/terra-qualifier-worker/internal/dto"

	"github.com/supabase-community/supabase-go"
)

// SupabaseHandler archives conversations and terminal qualification
// records. The in-memory store remains the source of truth for live
// conversations; Supabase is the durable copy the sales team reads.
type SupabaseHandler struct {
	client *supabase.Client
}

// NewSupabaseHandler creates a new SupabaseHandler instance
// url is the Supabase project URL (e.g., "https://xxx.supabase.co")
// key is the Supabase anon or service role key
func NewSupabaseHandler(url, key string) (*SupabaseHandler, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is required")
	}

	log.Printf("[SupabaseHandler] Initializing with URL: %s", url)

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to create client: %v", err)
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	log.Printf("[SupabaseHandler] Successfully created Supabase client")

	return &SupabaseHandler{
		client: client,
	}, nil
}

// InsertQualification persists a terminal qualification record and
// returns the generated row ID
func (h *SupabaseHandler) InsertQualification(conversationID string, record *dto.QualificationRecord) (string, error) {
	log.Printf("[SupabaseHandler] InsertQualification: conversation_id=%s, qualified=%v",
		conversationID, record.LeadQualified)

	insertData := map[string]interface{}{
		"conversation_id": conversationID,
		"lead_qualified":  record.LeadQualified,
		"owner_type":      record.OwnerType,
		"bairro":          record.Location.Bairro,
		"cidade":          record.Location.Cidade,
		"land_size_m2":    record.LandSizeM2,
		"asking_price":    record.AskingPrice,
		"legal_status":    record.LegalStatus,
		"obs":             record.Obs,
		"next_step":       record.NextStep,
		"qualified_at":    time.Now().UTC().Format(time.RFC3339),
	}

	data, _, err := h.client.From("qualifications").Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert qualification: %v", err)
		return "", fmt.Errorf("failed to insert qualification: %w", err)
	}

	var inserted []map[string]interface{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		log.Printf("[SupabaseHandler] Failed to parse insert response: %v", err)
		return "", fmt.Errorf("failed to parse insert response: %w", err)
	}

	if len(inserted) == 0 {
		return "", fmt.Errorf("no qualification was inserted")
	}

	id, ok := inserted[0]["id"].(string)
	if !ok {
		return "", fmt.Errorf("failed to get qualification ID from response")
	}

	log.Printf("[SupabaseHandler] Qualification inserted successfully: id=%s", id)
	return id, nil
}

// UpsertConversation archives the transcript and status of a conversation.
// Called after every turn, so the row is keyed by conversation_id.
func (h *SupabaseHandler) UpsertConversation(state *dto.ConversationState) error {
	log.Printf("[SupabaseHandler] UpsertConversation: conversation_id=%s, turns=%d, status=%s",
		state.ConversationID, len(state.Transcript), state.Status)

	transcriptJSON, err := json.Marshal(state.Transcript)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	upsertData := map[string]interface{}{
		"conversation_id": state.ConversationID,
		"transcript":      string(transcriptJSON),
		"status":          string(state.Status),
		"turn_count":      state.TurnCount,
		"updated_at":      time.Now().UTC().Format(time.RFC3339),
	}

	_, _, err = h.client.From("conversations").Insert(upsertData, true, "conversation_id", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to upsert conversation: %v", err)
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}

	log.Printf("[SupabaseHandler] Conversation archived successfully")
	return nil
}

// GetQualifications retrieves archived qualification records, optionally
// filtered by lead_qualified
func (h *SupabaseHandler) GetQualifications(qualifiedOnly bool) ([]map[string]interface{}, error) {
	log.Printf("[SupabaseHandler] GetQualifications: qualifiedOnly=%v", qualifiedOnly)

	query := h.client.From("qualifications").Select("*", "exact", false)
	if qualifiedOnly {
		query = query.Eq("lead_qualified", "true")
	}

	data, _, err := query.Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Query failed: %v", err)
		return nil, fmt.Errorf("failed to query qualifications: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		log.Printf("[SupabaseHandler] Failed to parse response: %v", err)
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	log.Printf("[SupabaseHandler] Query successful: %d rows returned", len(rows))
	return rows, nil
}

// GetClient returns the underlying Supabase client for advanced operations
func (h *SupabaseHandler) GetClient() *supabase.Client {
	return h.client
}
