// Package provider provides a unified factory for creating the Gemini LLM
// models used by the qualifier agents, supporting both Google AI Studio
// and Vertex AI backends.
package provider

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// Backend represents the LLM backend to use
type Backend string

const (
	// BackendGemini uses Google AI Studio (Gemini API)
	BackendGemini Backend = "gemini"
	// BackendVertexAI uses Google Cloud Vertex AI
	BackendVertexAI Backend = "vertexai"
)

// DefaultModel is used when no model override is configured
const DefaultModel = "gemini-2.5-flash"

// Config holds configuration for creating an LLM model
type Config struct {
	// Backend specifies which LLM backend to use
	Backend Backend

	// Model name, e.g. "gemini-2.5-flash" or "gemini-2.5-pro"
	Model string

	// Google AI Studio configuration
	GoogleAPIKey string

	// Vertex AI configuration
	GCPProject  string
	GCPLocation string
}

// NewModel creates a new LLM model based on the configuration
func NewModel(ctx context.Context, cfg Config) (model.LLM, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	switch cfg.Backend {
	case BackendGemini:
		return newGeminiModel(ctx, cfg)
	case BackendVertexAI:
		return newVertexAIModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

// newGeminiModel creates a Gemini model using Google AI Studio
func newGeminiModel(ctx context.Context, cfg Config) (model.LLM, error) {
	apiKey := cfg.GoogleAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Google API key is required for Gemini backend")
	}

	log.Printf("[Provider] Creating Gemini model: %s (Google AI Studio)", cfg.Model)

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	return gemini.NewModel(ctx, cfg.Model, clientConfig)
}

// newVertexAIModel creates a Gemini model using Vertex AI
func newVertexAIModel(ctx context.Context, cfg Config) (model.LLM, error) {
	project := cfg.GCPProject
	if project == "" {
		project = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if project == "" {
		return nil, fmt.Errorf("GCP Project is required for Vertex AI backend")
	}

	location := cfg.GCPLocation
	if location == "" {
		location = os.Getenv("GOOGLE_CLOUD_LOCATION")
	}
	if location == "" {
		return nil, fmt.Errorf("GCP Location is required for Vertex AI backend")
	}

	log.Printf("[Provider] Creating Gemini model: %s (Vertex AI, project: %s, location: %s)",
		cfg.Model, project, location)

	clientConfig := &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}

	return gemini.NewModel(ctx, cfg.Model, clientConfig)
}

// DetectBackend determines the backend to use based on configuration
func DetectBackend(useVertexAI bool) Backend {
	if useVertexAI {
		return BackendVertexAI
	}
	return BackendGemini
}
