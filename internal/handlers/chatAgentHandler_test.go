package handlers

import (
	"strings"
	"testing"

	"webstar/terra-qualifier-worker/internal/config"
	"webstar/terra-qualifier-worker/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestRenderTranscript(t *testing.T) {
	transcript := []dto.Turn{
		{Speaker: dto.SpeakerUser, Text: "Olá, tenho um terreno"},
		{Speaker: dto.SpeakerAgent, Text: "Olá! Em qual bairro fica?"},
		{Speaker: dto.SpeakerUser, Text: "No Campeche"},
	}

	rendered := RenderTranscript(transcript)

	expected := "User: Olá, tenho um terreno\n" +
		"Terra: Olá! Em qual bairro fica?\n" +
		"User: No Campeche"
	assert.Equal(t, expected, rendered)
}

func TestRenderTranscript_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTranscript(nil))
}

func TestBuildConciergeInstruction(t *testing.T) {
	instruction := buildConciergeInstruction()

	// The persona must name the full operational area and the refusal
	// path for everything outside it
	assert.Contains(t, instruction, config.CidadeAlvo)
	assert.Contains(t, instruction, config.FallbackMapURL)
	for _, bairro := range config.AllowedBairros() {
		assert.Contains(t, instruction, bairro)
	}

	assert.True(t, strings.Contains(instruction, "escritura"))
}
