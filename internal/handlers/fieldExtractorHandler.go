package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/model/provider"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// DefaultExtractionTimeout is the timeout for one extraction pass
	DefaultExtractionTimeout = 30 * time.Second
	// extractorAppName identifies the extraction agent in ADK sessions
	extractorAppName = "field_extractor"
)

// ExtractedFields is the raw field-map produced by one extraction pass.
// A nil pointer means the field was not explicitly stated in the
// conversation. The extractor output is untrusted model output: it is
// merged under first-write-wins and validated downstream, never taken
// as authoritative.
type ExtractedFields struct {
	OwnerType     *string  `json:"owner_type"`
	Bairro        *string  `json:"bairro"`
	Cidade        *string  `json:"cidade"`
	LandSizeM2    *float64 `json:"land_size_m2"`
	AskingPrice   *float64 `json:"asking_price"`
	LegalStatus   *string  `json:"legal_status"`
	Differentials *string  `json:"differentials"`
}

// FieldExtractorConfig holds configuration for the FieldExtractorHandler
type FieldExtractorConfig struct {
	// APIKey is the Google API key (Google AI Studio backend)
	APIKey string
	// Model is the Gemini model to use (default: provider.DefaultModel)
	Model string
	// Timeout for one extraction pass
	Timeout time.Duration
	// UseVertexAI enables the Vertex AI backend instead of Google AI Studio
	UseVertexAI bool
	// GCPProject is the Google Cloud project ID (Vertex AI backend)
	GCPProject string
	// GCPLocation is the Google Cloud location/region (Vertex AI backend)
	GCPLocation string
}

// FieldExtractorHandler extracts the six structured qualification fields
// from a conversation transcript using a dedicated extraction agent
type FieldExtractorHandler struct {
	config         FieldExtractorConfig
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
}

// NewFieldExtractorHandler creates a new FieldExtractorHandler instance
func NewFieldExtractorHandler(cfg FieldExtractorConfig) (*FieldExtractorHandler, error) {
	if cfg.Model == "" {
		cfg.Model = provider.DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultExtractionTimeout
	}

	ctx := context.Background()

	model, err := provider.NewModel(ctx, provider.Config{
		Backend:      provider.DetectBackend(cfg.UseVertexAI),
		Model:        cfg.Model,
		GoogleAPIKey: cfg.APIKey,
		GCPProject:   cfg.GCPProject,
		GCPLocation:  cfg.GCPLocation,
	})
	if err != nil {
		log.Printf("[FieldExtractorHandler] Failed to create model: %v", err)
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	extractorAgent, err := llmagent.New(llmagent.Config{
		Name:        "field_extractor_agent",
		Model:       model,
		Description: "An agent that extracts structured land qualification fields from dialogue.",
		Instruction: buildExtractorInstruction(),
	})
	if err != nil {
		log.Printf("[FieldExtractorHandler] Failed to create agent: %v", err)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        extractorAppName,
		Agent:          extractorAgent,
		SessionService: sessionService,
	})
	if err != nil {
		log.Printf("[FieldExtractorHandler] Failed to create runner: %v", err)
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	log.Printf("[FieldExtractorHandler] Successfully initialized with model: %s", cfg.Model)

	return &FieldExtractorHandler{
		config:         cfg,
		agent:          extractorAgent,
		runner:         r,
		sessionService: sessionService,
	}, nil
}

// buildExtractorInstruction creates the instruction for the extraction agent.
// The explicit-only rule is the core of the extraction contract: a field the
// user never stated must come back null, never inferred.
func buildExtractorInstruction() string {
	return `You are a real estate information extraction specialist.

Given a dialogue between "User" (a land seller) and "Terra" (a concierge), extract ONLY the fields below.

Fields:
- owner_type: "broker" if the contact is a real estate broker (corretor), "owner" if the land owner (proprietário)
- bairro: neighborhood name
- cidade: city name
- land_size_m2: land size in square meters (number)
- asking_price: asking price in BRL (number)
- legal_status: "has_title" if the land has a registered public deed (escritura), "no_title" if it does not
- differentials: free text with differentials (sea view, beachfront, etc.)

IMPORTANT RULES:
- Extract ONLY information the User stated EXPLICITLY and unambiguously
- Do NOT infer, guess or derive information from implication
- If a field was not stated, return null for it
- Numbers must be plain numbers without currency symbols or units

OUTPUT FORMAT:
Respond with ONLY a valid JSON object in this exact format (no markdown, no code blocks, no explanations):
{
  "owner_type": "owner",
  "bairro": "Campeche",
  "cidade": "Florianópolis",
  "land_size_m2": 450,
  "asking_price": 850000,
  "legal_status": "has_title",
  "differentials": "vista para o mar"
}

If nothing can be extracted, respond with:
{"owner_type": null, "bairro": null, "cidade": null, "land_size_m2": null, "asking_price": null, "legal_status": null, "differentials": null}`
}

// ExtractFields runs one extraction pass over the full transcript
func (h *FieldExtractorHandler) ExtractFields(ctx context.Context, transcript []dto.Turn) (*ExtractedFields, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf("CONVERSA:\n%s\n\nExtract the qualification fields and respond with ONLY a JSON object.",
		RenderTranscript(transcript))

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	userID := "system"
	createResp, err := h.sessionService.Create(ctx, &session.CreateRequest{
		AppName: extractorAppName,
		UserID:  userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sessionID := createResp.Session.ID()
	defer func() {
		_ = h.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   extractorAppName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	var responseText string
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	for event, err := range h.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	return ParseExtractionResponse(responseText)
}

// ParseExtractionResponse parses the extraction agent output into
// ExtractedFields. Model output is messy: markdown fences, surrounding
// prose and stringified numbers are all tolerated. Unknown keys are
// ignored; a response without a JSON object is an error.
func ParseExtractionResponse(response string) (*ExtractedFields, error) {
	response = cleanJSONResponse(response)

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in extraction response")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	fields := &ExtractedFields{
		OwnerType:     coerceOwnerType(raw["owner_type"]),
		Bairro:        coerceString(raw["bairro"]),
		Cidade:        coerceString(raw["cidade"]),
		LandSizeM2:    coerceNumber(raw["land_size_m2"]),
		AskingPrice:   coerceNumber(raw["asking_price"]),
		LegalStatus:   coerceString(raw["legal_status"]),
		Differentials: coerceString(raw["differentials"]),
	}
	return fields, nil
}

// cleanJSONResponse strips markdown code fences from a model response
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// coerceString converts a JSON value to a trimmed non-empty string
func coerceString(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// coerceNumber converts a JSON value to a positive float. Models sometimes
// return numbers as formatted strings ("850 mil"); those go through the
// numeric normalizer.
func coerceNumber(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return &n
		}
	case string:
		if value, ok := ParseNumericValue(n); ok && value > 0 {
			return &value
		}
	}
	return nil
}

// coerceOwnerType normalizes owner type synonyms to the canonical values
func coerceOwnerType(v interface{}) *string {
	s := coerceString(v)
	if s == nil {
		return nil
	}
	normalized := strings.ToLower(*s)
	switch {
	case strings.Contains(normalized, "broker") || strings.Contains(normalized, "corretor"):
		value := dto.OwnerTypeBroker
		return &value
	case strings.Contains(normalized, "owner") || strings.Contains(normalized, "propriet"):
		value := dto.OwnerTypeOwner
		return &value
	}
	// Unknown values pass through; validation catches them downstream
	return s
}
