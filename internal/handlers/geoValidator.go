package handlers

import (
	"fmt"
	"strings"

	"webstar/terra-qualifier-worker/internal/config"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// GeoValidator validates lead locations against the operational area.
// Fuzzy matching absorbs typos, missing diacritics and abbreviations
// ("jurere" matches "Jurerê Internacional").
type GeoValidator struct {
	allowedBairros      []string
	cidadeAlvo          string
	similarityThreshold int
}

// NewGeoValidator creates a GeoValidator for the configured operational area
func NewGeoValidator() *GeoValidator {
	return &GeoValidator{
		allowedBairros:      config.AllowedBairros(),
		cidadeAlvo:          config.CidadeAlvo,
		similarityThreshold: config.DefaultSimilarityThreshold,
	}
}

// NewGeoValidatorWithArea creates a GeoValidator with a custom allow-list
// and threshold, used by tests and future multi-area deployments
func NewGeoValidatorWithArea(allowedBairros []string, cidadeAlvo string, threshold int) *GeoValidator {
	return &GeoValidator{
		allowedBairros:      allowedBairros,
		cidadeAlvo:          cidadeAlvo,
		similarityThreshold: threshold,
	}
}

// ValidateBairro checks a neighborhood name against the allow-list.
// Exact case-insensitive comparison runs first so a verbatim allowed name
// can never lose to fuzzy near-miss scoring; fuzzy token matching is the
// fallback for typos, missing diacritics and partial names.
// Returns (ok, canonical name).
func (v *GeoValidator) ValidateBairro(bairro string) (bool, string) {
	bairro = strings.TrimSpace(bairro)
	if bairro == "" {
		return false, ""
	}

	for _, allowed := range v.allowedBairros {
		if strings.EqualFold(bairro, allowed) {
			return true, allowed
		}
	}

	bestScore := 0
	bestMatch := ""
	for _, allowed := range v.allowedBairros {
		score := similarityScore(bairro, allowed)
		if score > bestScore {
			bestScore = score
			bestMatch = allowed
		}
	}

	if bestScore >= v.similarityThreshold {
		return true, bestMatch
	}
	return false, ""
}

// similarityScore scores two neighborhood names 0-100. Inputs are
// lowercased and accent-folded first ("jurere" must score against
// "Jurerê Internacional"); token-set handles partial names, token-sort
// handles reordered ones.
func similarityScore(input, candidate string) int {
	input = foldAccents(strings.ToLower(input))
	candidate = foldAccents(strings.ToLower(candidate))

	score := fuzzy.TokenSortRatio(input, candidate)
	if setScore := fuzzy.TokenSetRatio(input, candidate); setScore > score {
		score = setScore
	}
	return score
}

// foldAccents replaces common Portuguese accented letters with their
// ASCII equivalents
func foldAccents(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch r {
		case 'á', 'à', 'ã', 'â', 'ä':
			result.WriteRune('a')
		case 'é', 'è', 'ê', 'ë':
			result.WriteRune('e')
		case 'í', 'ì', 'î', 'ï':
			result.WriteRune('i')
		case 'ó', 'ò', 'õ', 'ô', 'ö':
			result.WriteRune('o')
		case 'ú', 'ù', 'û', 'ü':
			result.WriteRune('u')
		case 'ç':
			result.WriteRune('c')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateCidade checks whether cidade is the target city
func (v *GeoValidator) ValidateCidade(cidade string) bool {
	return strings.EqualFold(strings.TrimSpace(cidade), v.cidadeAlvo)
}

// ValidateLocation validates the full location (bairro plus optional cidade).
// Returns (ok, canonical bairro, reason).
func (v *GeoValidator) ValidateLocation(bairro, cidade string) (bool, string, string) {
	if cidade != "" && !v.ValidateCidade(cidade) {
		return false, "", fmt.Sprintf("cidade %q não é %s", cidade, v.cidadeAlvo)
	}

	ok, matched := v.ValidateBairro(bairro)
	if !ok {
		return false, "", fmt.Sprintf("bairro %q não está na área de atuação", bairro)
	}
	return true, matched, fmt.Sprintf("bairro %q validado", matched)
}
