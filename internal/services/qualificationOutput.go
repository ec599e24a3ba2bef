package services

import (
	"log"

	"webstar/terra-qualifier-worker/internal/config"
	"webstar/terra-qualifier-worker/internal/dto"
	"webstar/terra-qualifier-worker/internal/handlers"
)

// Fallback values substituted at the output boundary. They are applied
// only when building the terminal record; the accumulated fields
// themselves are never mutated with fallbacks.
const (
	// MinPositiveSentinel keeps land_size_m2 and asking_price positive in
	// the output schema even for disqualified or incomplete leads
	MinPositiveSentinel = 0.1

	// BairroUnspecified replaces a never-stated neighborhood
	BairroUnspecified = "unspecified"

	// LegalStatusHasTitle is the normalized affirmative phrase
	LegalStatusHasTitle = "Possui escritura pública registrada"
	// LegalStatusNoTitle is the normalized negative phrase
	LegalStatusNoTitle = "Não possui escritura registrada"
	// LegalStatusNotInformed replaces a never-stated legal status
	LegalStatusNotInformed = "Não informado"

	// ObsNone replaces never-stated differentials
	ObsNone = "Sem observações adicionais"
)

// assembleQualification builds the terminal qualification record from the
// accumulated fields. Every output field carries a value: nil fields are
// replaced by the defined fallbacks so downstream consumers never see null.
func assembleQualification(fields dto.LeadFields, isQualified bool) *dto.QualificationRecord {
	record := &dto.QualificationRecord{
		LeadQualified: isQualified,
		OwnerType:     dto.OwnerTypeBroker,
		Location: dto.Location{
			Bairro: BairroUnspecified,
			Cidade: config.CidadeAlvo,
		},
		LandSizeM2:  MinPositiveSentinel,
		AskingPrice: MinPositiveSentinel,
		LegalStatus: LegalStatusNotInformed,
		Obs:         ObsNone,
		NextStep:    dto.NextStepDisqualified,
	}

	if isQualified {
		record.NextStep = dto.NextStepScheduleMeeting
	}
	if fields.OwnerType != nil {
		record.OwnerType = *fields.OwnerType
	}
	if fields.Bairro != nil {
		record.Location.Bairro = *fields.Bairro
	}
	if fields.Cidade != nil {
		record.Location.Cidade = *fields.Cidade
	}
	if fields.LandSizeM2 != nil {
		record.LandSizeM2 = *fields.LandSizeM2
		if ok, msg := handlers.ValidateLandSize(record.LandSizeM2); !ok {
			log.Printf("[QualifierProcessor] Land size warning: %s", msg)
		}
	}
	if fields.AskingPrice != nil {
		record.AskingPrice = *fields.AskingPrice
		if ok, msg := handlers.ValidatePrice(record.AskingPrice); !ok {
			log.Printf("[QualifierProcessor] Price warning: %s", msg)
		}
	}
	if fields.LegalStatus != nil {
		record.LegalStatus = normalizeLegalStatus(*fields.LegalStatus)
	}
	if fields.Differentials != nil {
		record.Obs = *fields.Differentials
	}

	return record
}

// normalizeLegalStatus maps a free-text legal status answer to one of the
// two canonical phrases by keyword family; unclear answers pass through
// verbatim for human review
func normalizeLegalStatus(status string) string {
	switch handlers.LegalStatusPolarity(status) {
	case 1:
		return LegalStatusHasTitle
	case -1:
		return LegalStatusNoTitle
	default:
		return status
	}
}
