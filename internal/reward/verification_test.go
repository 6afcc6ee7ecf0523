package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

func TestVerificationTier(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.VerificationType
		signals  Signals
		expected float64
	}{
		{"none", domain.VerificationNone, Signals{}, 1.0},
		{"photo", domain.VerificationPhoto, Signals{}, 1.10},
		{"location without geofence", domain.VerificationLocation, Signals{}, 1.0},
		{"location with geofence", domain.VerificationLocation, Signals{GeofencePassed: true}, 1.10},
		{"both with geofence", domain.VerificationBoth, Signals{GeofencePassed: true}, 1.25},
		{"both without geofence", domain.VerificationBoth, Signals{}, 1.10},
		{"device health", domain.VerificationNone, Signals{DeviceHealthConfirmed: true}, 1.05},
		{"partner confirmed", domain.VerificationNone, Signals{PartnerConfirmed: true}, 1.10},
		{"one anomaly", domain.VerificationPhoto, Signals{AnomalyFlags: []string{"mock_location"}}, 1.10 * 0.75},
		{"two anomalies", domain.VerificationNone, Signals{AnomalyFlags: []string{"a", "b"}}, 0.5625},
		{"floor", domain.VerificationNone, Signals{AnomalyFlags: []string{"a", "b", "c", "d", "e", "f"}}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, VerificationTier(tt.kind, tt.signals), 1e-9)
		})
	}
}

func TestVerificationTier_AnomaliesNeverIncrease(t *testing.T) {
	kinds := []domain.VerificationType{
		domain.VerificationNone, domain.VerificationPhoto, domain.VerificationLocation, domain.VerificationBoth,
	}
	for _, k := range kinds {
		clean := Signals{GeofencePassed: true, DeviceHealthConfirmed: true, PartnerConfirmed: true}
		flagged := clean
		flagged.AnomalyFlags = []string{"emulator"}
		assert.Less(t, VerificationTier(k, flagged), VerificationTier(k, clean), "kind %s", k)
	}
}
