package dto

// Speaker identifies who produced a conversation turn
type Speaker string

const (
	// SpeakerUser is the lead being qualified
	SpeakerUser Speaker = "user"
	// SpeakerAgent is the Terra concierge
	SpeakerAgent Speaker = "agent"
)

// Turn is a single utterance in a conversation transcript
// @Description One turn of the qualification dialogue
type Turn struct {
	// Who produced this turn: "user" or "agent"
	Speaker Speaker `json:"speaker"`
	// The utterance text
	Text string `json:"text"`
}

// ConversationStatus is the lifecycle state of a qualification conversation
type ConversationStatus string

const (
	// StatusInProgress means the conversation still needs more turns
	StatusInProgress ConversationStatus = "in_progress"
	// StatusComplete is terminal and irreversible
	StatusComplete ConversationStatus = "complete"
)

// Owner type values for the owner_type field
const (
	OwnerTypeBroker = "broker"
	OwnerTypeOwner  = "owner"
)

// Next step values for the qualification record
const (
	NextStepScheduleMeeting = "schedule_meeting"
	NextStepDisqualified    = "disqualified"
)

// LeadFields holds the six structured attributes collected during
// qualification. A nil pointer means the lead has not stated that
// attribute yet. Once set, a field is never overwritten by extraction
// (first-write-wins); the only sanctioned exception is neighborhood
// canonicalization after geographic validation.
type LeadFields struct {
	// OwnerType is "broker" or "owner"
	OwnerType *string `json:"owner_type"`
	// Bairro is the neighborhood, the primary geographic qualifying unit
	Bairro *string `json:"bairro"`
	// Cidade defaults to the target city when never stated
	Cidade *string `json:"cidade"`
	// LandSizeM2 is the land size in square meters (positive)
	LandSizeM2 *float64 `json:"land_size_m2"`
	// AskingPrice is the asking price in BRL (positive)
	AskingPrice *float64 `json:"asking_price"`
	// LegalStatus is the documentation status as stated by the lead
	LegalStatus *string `json:"legal_status"`
	// Differentials is free text (sea view, beachfront, etc.)
	Differentials *string `json:"differentials"`
}

// ConversationState is the full per-conversation unit of work. The
// qualifier core treats it as pass-by-value input/output on every turn;
// the conversation store owns it between turns.
type ConversationState struct {
	// ConversationID keys the conversation in the store
	ConversationID string `json:"conversation_id"`
	// Transcript is the append-only ordered turn history
	Transcript []Turn `json:"transcript"`
	// Fields are the structured attributes collected so far
	Fields LeadFields `json:"fields"`
	// LocationValidated flips to true the first time a non-nil bairro
	// is evaluated; it never resets
	LocationValidated bool `json:"location_validated"`
	// IsQualified is meaningful only after LocationValidated is true
	IsQualified bool `json:"is_qualified"`
	// Status is in_progress until the conversation is terminal
	Status ConversationStatus `json:"status"`
	// TurnCount increments once per processed turn
	TurnCount int `json:"turn_count"`
	// Result is set exactly once, when Status becomes complete
	Result *QualificationRecord `json:"result,omitempty"`
}

// NewConversationState creates an empty in-progress state for a conversation
func NewConversationState(conversationID string) *ConversationState {
	return &ConversationState{
		ConversationID: conversationID,
		Status:         StatusInProgress,
	}
}

// Snapshot returns a copy safe to read after the conversation lock is
// released. The transcript slice is copied; field pointers and the result
// record are shared, which is safe because their pointees are write-once.
func (s *ConversationState) Snapshot() *ConversationState {
	clone := *s
	clone.Transcript = make([]Turn, len(s.Transcript))
	copy(clone.Transcript, s.Transcript)
	return &clone
}

// Location is the validated geographic part of a qualification record
type Location struct {
	// Canonical neighborhood name, or "unspecified"
	Bairro string `json:"bairro"`
	// City name (target city when never stated)
	Cidade string `json:"cidade"`
}

// QualificationRecord is the terminal structured output of a conversation
// @Description Final qualification result emitted once per conversation
type QualificationRecord struct {
	// Whether the lead passed geographic validation
	LeadQualified bool `json:"lead_qualified"`
	// "broker" or "owner"
	OwnerType string `json:"owner_type"`
	// Validated location
	Location Location `json:"location"`
	// Land size in square meters (sentinel 0.1 when never stated)
	LandSizeM2 float64 `json:"land_size_m2"`
	// Asking price in BRL (sentinel 0.1 when never stated)
	AskingPrice float64 `json:"asking_price"`
	// Normalized documentation status phrase
	LegalStatus string `json:"legal_status"`
	// Differentials or a neutral phrase when none were mentioned
	Obs string `json:"obs"`
	// "schedule_meeting" when qualified, "disqualified" otherwise
	NextStep string `json:"next_step"`
}
