package reward

import (
	"math"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Signals are the optional verification inputs collected with a completion
type Signals = domain.VerificationSignals

// VerificationTier computes the verification multiplier. Anomalies only ever
// lower the tier.
func VerificationTier(kind domain.VerificationType, s Signals) float64 {
	tier := VerificationBase
	switch kind {
	case domain.VerificationPhoto:
		tier += PhotoBonus
	case domain.VerificationLocation:
		if s.GeofencePassed {
			tier += LocationBonus
		}
	case domain.VerificationBoth:
		if s.GeofencePassed {
			tier += PhotoAndLocationBonus
		} else {
			tier += PhotoBonus
		}
	}
	if s.DeviceHealthConfirmed {
		tier += DeviceHealthBonus
	}
	if s.PartnerConfirmed {
		tier += PartnerConfirmedBonus
	}

	if n := len(s.AnomalyFlags); n > 0 {
		tier *= math.Pow(AnomalyPenaltyFactor, float64(n))
		if tier < VerificationFloor {
			tier = VerificationFloor
		}
	}
	return tier
}
