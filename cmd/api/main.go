package main

import (
	"log"

	"webstar/terra-qualifier-worker/internal/api"
	"webstar/terra-qualifier-worker/internal/api/controllers"
	"webstar/terra-qualifier-worker/internal/config"
	"webstar/terra-qualifier-worker/internal/handlers"
	"webstar/terra-qualifier-worker/internal/services"

	"github.com/joho/godotenv"

	_ "webstar/terra-qualifier-worker/docs" // Swagger generated docs
)

// @title Terra Qualifier API
// @version 1.0
// @description AI-powered lead qualification service for land-sale prospects. Runs a multi-turn concierge dialogue, extracts structured qualification fields and emits a terminal qualification record.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @schemes http https
func main() {
	// Load .env if present; real deployments use process environment
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	// The LLM provider is the one hard requirement: without it neither
	// agent can run
	if cfg.GoogleAPIKey == "" && !cfg.UseVertexAI {
		log.Fatal("GOOGLE_API_KEY environment variable is required (or enable Vertex AI via GOOGLE_GENAI_USE_VERTEXAI)")
	}

	// Initialize the concierge dialogue agent
	chatAgent, err := handlers.NewChatAgentHandler(handlers.ChatAgentConfig{
		APIKey:      cfg.GoogleAPIKey,
		Model:       cfg.GeminiModel,
		UseVertexAI: cfg.UseVertexAI,
		GCPProject:  cfg.GCPProject,
		GCPLocation: cfg.GCPLocation,
	})
	if err != nil {
		log.Fatalf("Failed to initialize ChatAgentHandler: %v", err)
	}

	// Initialize the field extraction agent
	extractor, err := handlers.NewFieldExtractorHandler(handlers.FieldExtractorConfig{
		APIKey:      cfg.GoogleAPIKey,
		Model:       cfg.GeminiModel,
		UseVertexAI: cfg.UseVertexAI,
		GCPProject:  cfg.GCPProject,
		GCPLocation: cfg.GCPLocation,
	})
	if err != nil {
		log.Fatalf("Failed to initialize FieldExtractorHandler: %v", err)
	}

	geoValidator := handlers.NewGeoValidator()
	log.Printf("GeoValidator initialized - operational area: %s (%v)", config.CidadeAlvo, config.AllowedBairros())

	// Initialize SupabaseHandler if credentials are configured
	var supabaseHandler *handlers.SupabaseHandler
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		supabaseHandler, err = handlers.NewSupabaseHandler(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize SupabaseHandler: %v", err)
			log.Printf("Continuing without conversation archiving")
			supabaseHandler = nil
		} else {
			log.Printf("SupabaseHandler initialized - conversation archiving enabled")
		}
	} else {
		log.Printf("SUPABASE_URL or SUPABASE_SECRET_KEY not set - conversation archiving disabled")
	}

	// Wire the per-turn orchestrator and the conversation store
	processor := services.NewQualifierProcessor(chatAgent, extractor, geoValidator)
	store := handlers.NewConversationStoreHandler()

	chatController := controllers.NewChatController(processor, store, supabaseHandler)
	conversationController := controllers.NewConversationController(store)
	qualificationController := controllers.NewQualificationController(supabaseHandler)

	router := api.NewRouter(chatController, conversationController, qualificationController)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
