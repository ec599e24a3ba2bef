package handlers

import (
	"fmt"
	"strings"

	"webstar/terra-qualifier-worker/internal/config"
)

// affirmative and negative keyword families for legal status answers
var (
	legalAffirmativeKeywords = []string{"sim", "possui", "tem", "regularizado", "registrada", "ok", "has_title", "escritura"}
	legalNegativeKeywords    = []string{"não", "nao", "sem", "pendente", "irregular", "no_title"}
)

// ValidateLandSize checks a land size against the plausible business range.
// Out-of-range values are flagged for human review, not rejected.
func ValidateLandSize(sizeM2 float64) (bool, string) {
	if sizeM2 <= 0 {
		return false, "tamanho do terreno deve ser maior que zero"
	}
	if sizeM2 < config.MinLandSizeM2 {
		return false, fmt.Sprintf("tamanho do terreno muito pequeno (mín: %.0fm²)", config.MinLandSizeM2)
	}
	if sizeM2 > config.MaxLandSizeM2 {
		return false, fmt.Sprintf("tamanho do terreno suspeito (máx: %.0fm²)", config.MaxLandSizeM2)
	}
	return true, "tamanho validado"
}

// ValidatePrice checks an asking price against the plausible business range
func ValidatePrice(price float64) (bool, string) {
	if price <= 0 {
		return false, "preço deve ser maior que zero"
	}
	if price < config.MinPriceBRL {
		return false, fmt.Sprintf("preço muito baixo (mín: R$ %.2f)", config.MinPriceBRL)
	}
	if price > config.MaxPriceBRL {
		return false, fmt.Sprintf("preço suspeito (máx: R$ %.2f)", config.MaxPriceBRL)
	}
	return true, "preço validado"
}

// LegalStatusPolarity classifies a free-text legal status answer:
// +1 for the affirmative family (has title), -1 for the negative family,
// 0 when the answer is unclear
func LegalStatusPolarity(status string) int {
	normalized := strings.ToLower(strings.TrimSpace(status))

	hasNegative := false
	for _, kw := range legalNegativeKeywords {
		if strings.Contains(normalized, kw) {
			hasNegative = true
			break
		}
	}
	// Negative wins: "não possui" contains both families
	if hasNegative {
		return -1
	}

	for _, kw := range legalAffirmativeKeywords {
		if strings.Contains(normalized, kw) {
			return 1
		}
	}
	return 0
}

// ValidateLegalStatus checks whether a legal status answer is classifiable
func ValidateLegalStatus(status string) (bool, string) {
	if LegalStatusPolarity(status) == 0 {
		return false, "situação jurídica não está clara (Sim/Não)"
	}
	return true, "situação jurídica validada"
}
