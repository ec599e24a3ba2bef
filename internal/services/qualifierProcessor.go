package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"
	"webstar/terra-qualifier-worker/internal/metrics"
)

// FallbackReply is returned to the lead when reply generation fails.
// Internal errors never surface as raw text to the end user.
const FallbackReply = "Desculpe, tive um problema momentâneo. Pode repetir, por favor?"

// ReplyGenerator produces the next concierge utterance for a transcript
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, transcript []dto.Turn) (string, error)
}

// FieldExtractor extracts the structured qualification fields from a transcript
type FieldExtractor interface {
	ExtractFields(ctx context.Context, transcript []dto.Turn) (*handlers.ExtractedFields, error)
}

// LocationValidator validates a lead location against the operational area
type LocationValidator interface {
	ValidateLocation(bairro, cidade string) (bool, string, string)
}

// TurnResult is the outcome of processing one conversation turn
type TurnResult struct {
	// Reply is the agent utterance for this turn
	Reply string
	// Status of the conversation after this turn
	Status dto.ConversationStatus
	// Record is the terminal qualification record, set only when Status
	// is complete
	Record *dto.QualificationRecord
}

// QualifierProcessor is the per-turn conversation orchestrator. Each
// invocation runs a single pass over one conversation's state: generate
// reply, extract, validate location, route. The conversation "loops" only
// because the caller stores the returned state and resubmits it with the
// next user message; the processor itself keeps no cross-call memory.
type QualifierProcessor struct {
	chatAgent    ReplyGenerator
	extractor    FieldExtractor
	geoValidator LocationValidator
}

// NewQualifierProcessor creates a new QualifierProcessor instance
func NewQualifierProcessor(chatAgent ReplyGenerator, extractor FieldExtractor, geoValidator LocationValidator) *QualifierProcessor {
	return &QualifierProcessor{
		chatAgent:    chatAgent,
		extractor:    extractor,
		geoValidator: geoValidator,
	}
}

// ProcessTurn mutates state with the effects of one turn and returns the
// turn result. Invoking it on a complete state is a no-op that returns the
// previously produced record: the final record is generated exactly once.
//
// The caller must serialize invocations per conversation; see
// handlers.ConversationStoreHandler.LockConversation.
func (p *QualifierProcessor) ProcessTurn(ctx context.Context, state *dto.ConversationState, userMessage string) *TurnResult {
	if state.Status == dto.StatusComplete {
		log.Printf("[QualifierProcessor] Conversation %s is already complete, ignoring turn", state.ConversationID)
		return &TurnResult{
			Reply:  lastAgentText(state.Transcript),
			Status: dto.StatusComplete,
			Record: state.Result,
		}
	}

	metrics.ChatTurnsProcessed.Inc()

	state.Transcript = append(state.Transcript, dto.Turn{
		Speaker: dto.SpeakerUser,
		Text:    userMessage,
	})

	reply := p.generateReply(ctx, state)
	p.extractAndMerge(ctx, state)
	p.validateLocation(state)

	if p.shouldFinalize(state) {
		record := p.finalize(state)
		return &TurnResult{
			Reply:  reply,
			Status: dto.StatusComplete,
			Record: record,
		}
	}

	return &TurnResult{
		Reply:  reply,
		Status: dto.StatusInProgress,
	}
}

// generateReply asks the concierge agent for the next utterance and
// appends it to the transcript. Generation failure degrades to a fixed
// conversational fallback; the conversation always continues.
func (p *QualifierProcessor) generateReply(ctx context.Context, state *dto.ConversationState) string {
	start := time.Now()
	reply, err := p.chatAgent.GenerateReply(ctx, state.Transcript)
	metrics.CapabilityDuration.WithLabelValues("reply").Observe(time.Since(start).Seconds())

	if err != nil {
		log.Printf("[QualifierProcessor] Reply generation failed for %s: %v (using fallback reply)",
			state.ConversationID, err)
		metrics.CapabilityFailures.WithLabelValues("reply").Inc()
		reply = FallbackReply
	}

	state.Transcript = append(state.Transcript, dto.Turn{
		Speaker: dto.SpeakerAgent,
		Text:    reply,
	})
	state.TurnCount++
	return reply
}

// extractAndMerge runs one extraction pass over the full transcript and
// folds the result into state under first-write-wins. Extraction failure
// is non-fatal: the turn proceeds with unchanged fields and extraction
// self-heals on a later turn as more context accumulates.
func (p *QualifierProcessor) extractAndMerge(ctx context.Context, state *dto.ConversationState) {
	start := time.Now()
	extracted, err := p.extractor.ExtractFields(ctx, state.Transcript)
	metrics.CapabilityDuration.WithLabelValues("extraction").Observe(time.Since(start).Seconds())

	if err != nil {
		log.Printf("[QualifierProcessor] Extraction failed for %s: %v (keeping fields unchanged)",
			state.ConversationID, err)
		metrics.CapabilityFailures.WithLabelValues("extraction").Inc()
		return
	}

	mergeExtracted(&state.Fields, extracted)
}

// mergeExtracted applies the first-write-wins merge policy: a field
// already holding a value is never overwritten by later extraction
func mergeExtracted(fields *dto.LeadFields, extracted *handlers.ExtractedFields) {
	if extracted == nil {
		return
	}
	if fields.OwnerType == nil && extracted.OwnerType != nil {
		fields.OwnerType = extracted.OwnerType
	}
	if fields.Bairro == nil && extracted.Bairro != nil {
		fields.Bairro = extracted.Bairro
	}
	if fields.Cidade == nil && extracted.Cidade != nil {
		fields.Cidade = extracted.Cidade
	}
	if fields.LandSizeM2 == nil && extracted.LandSizeM2 != nil {
		fields.LandSizeM2 = extracted.LandSizeM2
	}
	if fields.AskingPrice == nil && extracted.AskingPrice != nil {
		fields.AskingPrice = extracted.AskingPrice
	}
	if fields.LegalStatus == nil && extracted.LegalStatus != nil {
		fields.LegalStatus = extracted.LegalStatus
	}
	if fields.Differentials == nil && extracted.Differentials != nil {
		fields.Differentials = extracted.Differentials
	}
}

// validateLocation runs geographic validation the first time a bairro is
// known. On a match the bairro is canonicalized: the one sanctioned
// exception to first-write-wins, since it rewrites spelling, not facts.
func (p *QualifierProcessor) validateLocation(state *dto.ConversationState) {
	if state.Fields.Bairro == nil || state.LocationValidated {
		return
	}

	cidade := ""
	if state.Fields.Cidade != nil {
		cidade = *state.Fields.Cidade
	}

	ok, matched, reason := p.geoValidator.ValidateLocation(*state.Fields.Bairro, cidade)
	state.LocationValidated = true
	state.IsQualified = ok

	log.Printf("[QualifierProcessor] Location validation for %s: ok=%v, %s",
		state.ConversationID, ok, reason)

	if ok && matched != "" {
		state.Fields.Bairro = &matched
	}
}

// shouldFinalize evaluates the termination predicate: a failed location
// check disqualifies immediately, regardless of missing fields; otherwise
// the conversation ends once every qualification field is known
func (p *QualifierProcessor) shouldFinalize(state *dto.ConversationState) bool {
	if state.LocationValidated && !state.IsQualified {
		return true
	}
	return allFieldsSet(state.Fields)
}

// allFieldsSet reports whether every qualification field has a value.
// Cidade is excluded: it defaults to the target city at output time.
func allFieldsSet(fields dto.LeadFields) bool {
	return fields.OwnerType != nil &&
		fields.Bairro != nil &&
		fields.LandSizeM2 != nil &&
		fields.AskingPrice != nil &&
		fields.LegalStatus != nil &&
		fields.Differentials != nil
}

// finalize assembles the terminal record, appends it to the transcript as
// the closing agent turn and freezes the state
func (p *QualifierProcessor) finalize(state *dto.ConversationState) *dto.QualificationRecord {
	record := assembleQualification(state.Fields, state.IsQualified)

	outcome := "qualified"
	if !record.LeadQualified {
		outcome = "disqualified"
	}
	metrics.QualificationsCompleted.WithLabelValues(outcome).Inc()

	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Printf("[QualifierProcessor] Failed to marshal qualification record: %v", err)
		recordJSON = []byte("{}")
	}

	state.Transcript = append(state.Transcript, dto.Turn{
		Speaker: dto.SpeakerAgent,
		Text:    string(recordJSON),
	})
	state.Status = dto.StatusComplete
	state.Result = record

	log.Printf("[QualifierProcessor] Conversation %s complete: qualified=%v, next_step=%s",
		state.ConversationID, record.LeadQualified, record.NextStep)

	return record
}

// lastAgentText returns the text of the most recent agent turn
func lastAgentText(transcript []dto.Turn) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Speaker == dto.SpeakerAgent {
			return transcript[i].Text
		}
	}
	return ""
}
