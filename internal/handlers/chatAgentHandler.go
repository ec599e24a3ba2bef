package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"webstar/terra-qualifier-worker/internal/config"
	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/model/provider"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// DefaultReplyTimeout is the timeout for generating one concierge reply
	DefaultReplyTimeout = 30 * time.Second
	// chatAppName identifies the concierge agent in ADK sessions
	chatAppName = "terra_concierge"
)

// ChatAgentConfig holds configuration for the ChatAgentHandler
type ChatAgentConfig struct {
	// APIKey is the Google API key (Google AI Studio backend)
	APIKey string
	// Model is the Gemini model to use (default: provider.DefaultModel)
	Model string
	// Timeout for generating a single reply
	Timeout time.Duration
	// UseVertexAI enables the Vertex AI backend instead of Google AI Studio
	UseVertexAI bool
	// GCPProject is the Google Cloud project ID (Vertex AI backend)
	GCPProject string
	// GCPLocation is the Google Cloud location/region (Vertex AI backend)
	GCPLocation string
}

// ChatAgentHandler generates the Terra concierge replies. Each call is
// stateless: the full transcript is rendered into a fresh ADK session, so
// repeated invocations with the same transcript behave identically.
type ChatAgentHandler struct {
	config         ChatAgentConfig
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
}

// NewChatAgentHandler creates a new ChatAgentHandler instance
func NewChatAgentHandler(cfg ChatAgentConfig) (*ChatAgentHandler, error) {
	if cfg.Model == "" {
		cfg.Model = provider.DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultReplyTimeout
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
		log.Printf("[ChatAgentHandler] Failed to create model: %v", err)
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	conciergeAgent, err := llmagent.New(llmagent.Config{
		Name:        "terra_concierge_agent",
		Model:       model,
		Description: "Terra, a land pre-qualification concierge for real estate investment.",
		Instruction: buildConciergeInstruction(),
	})
	if err != nil {
		log.Printf("[ChatAgentHandler] Failed to create agent: %v", err)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        chatAppName,
		Agent:          conciergeAgent,
		SessionService: sessionService,
	})
	if err != nil {
		log.Printf("[ChatAgentHandler] Failed to create runner: %v", err)
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	log.Printf("[ChatAgentHandler] Successfully initialized with model: %s", cfg.Model)

	return &ChatAgentHandler{
		config:         cfg,
		agent:          conciergeAgent,
		runner:         r,
		sessionService: sessionService,
	}, nil
}

// GenerateReply produces the next concierge utterance for the transcript.
// The latest user turn must already be the last transcript entry.
func (h *ChatAgentHandler) GenerateReply(ctx context.Context, transcript []dto.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(`CONVERSA ATÉ AGORA:
%s

Responda como Terra com a próxima mensagem da conversa. Responda APENAS com o texto da mensagem.`,
		RenderTranscript(transcript))

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	userID := "system"
	createResp, err := h.sessionService.Create(ctx, &session.CreateRequest{
		AppName: chatAppName,
		UserID:  userID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sessionID := createResp.Session.ID()
	defer func() {
		_ = h.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   chatAppName,
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
			return "", fmt.Errorf("reply generation failed: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	reply := strings.TrimSpace(responseText)
	if reply == "" {
		return "", fmt.Errorf("reply generation returned empty response")
	}
	return reply, nil
}

// RenderTranscript renders a transcript as plain dialogue text, one line
// per turn, the format both agents consume
func RenderTranscript(transcript []dto.Turn) string {
	lines := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		role := "Terra"
		if turn.Speaker == dto.SpeakerUser {
			role = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, turn.Text))
	}
	return strings.Join(lines, "\n")
}

// buildConciergeInstruction creates the persona instruction for the Terra agent
func buildConciergeInstruction() string {
	bairros := config.AllowedBairros()
	focus := config.BairroFocus()

	var focusLines strings.Builder
	for _, bairro := range bairros {
		focusLines.WriteString(fmt.Sprintf("- **%s**: %s\n", bairro, focus[bairro]))
	}

	return fmt.Sprintf(`Você é **Terra**, uma Concierge de Alta Performance especializada em pré-qualificação de terrenos para investimento imobiliário.

# IDENTIDADE E TOM
- Profissional, consultiva e ágil
- Seja CONCISA - corretores estão sempre com pressa
- Máximo 2-3 frases por resposta
- NUNCA repita perguntas sobre informações já fornecidas

# SUA MISSÃO
Qualificar terrenos através de uma conversa natural, extraindo estas informações:

1. **Perfil do contato** (corretor ou proprietário)
2. **Localização exata** (Bairro/Cidade)
3. **Tamanho do terreno** (m²)
4. **Valor pedido** (R$)
5. **Situação jurídica** (Possui escritura pública? Sim/Não)
6. **Diferenciais** (Frente mar? Vista mar?)

# REGRAS DE VALIDAÇÃO GEOGRÁFICA (CRÍTICO)
A empresa opera EXCLUSIVAMENTE em %s, nos seguintes bairros:

%s
**Quando o terreno estiver em QUALQUER outro bairro, recuse educadamente:**
"Obrigada pelo contato! No momento, focamos exclusivamente em %s. Você pode ver nossa área de atuação em: %s. Quando expandirmos para sua região, entraremos em contato!"

# FLUXO DA CONVERSA
ANTES DE CADA RESPOSTA:
1. Analise TODA a conversa até agora
2. Identifique quais informações você JÁ TEM
3. Se já tem TODAS → confirme os dados brevemente, agradeça e informe o próximo passo
4. Se ainda falta alguma → pergunte APENAS o que falta

# TRATAMENTO DE ERROS
- Info vaga (ex: "É grande"): peça especificação numérica
- Bairro ambíguo (ex: "perto do shopping"): peça o nome do bairro
- Múltiplos terrenos: foque em um por vez

**REGRA DE OURO:** Se você já tem uma informação, NUNCA pergunte ela novamente.`,
		config.CidadeAlvo,
		focusLines.String(),
		strings.Join(bairros, ", "),
		config.FallbackMapURL,
	)
}
