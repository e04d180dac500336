package interactions

import (
	"strings"
	"testing"
)

func TestCheck_KnownPairs(t *testing.T) {
	tests := []struct {
		name       string
		medA, medB string
		reason     string
	}{
		{"warfarin ibuprofen", "warfarin", "ibuprofen", "bleeding"},
		{"reversed order", "ibuprofen", "warfarin", "bleeding"},
		{"case and whitespace", "  Warfarin ", "IBUPROFEN", "bleeding"},
		{"metformin contrast", "metformin", "contrast dye", "lactic acidosis"},
		{"lisinopril spironolactone", "lisinopril", "spironolactone", "hyperkalemia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Check(tt.medA, tt.medB)
			if !result.IsPotentiallyRisky {
				t.Fatalf("pair should be flagged risky: %v", result)
			}
			if !strings.Contains(result.Reason, tt.reason) {
				t.Errorf("reason %q should mention %q", result.Reason, tt.reason)
			}
			if result.Advice == "" {
				t.Error("advice must not be empty")
			}
		})
	}
}

func TestCheck_SameMedication(t *testing.T) {
	result := Check("Aspirin", "aspirin ")
	if result.IsPotentiallyRisky {
		t.Error("same medication is not an interaction")
	}
	if result.Reason != "same medication" {
		t.Errorf("got reason %q", result.Reason)
	}
}

func TestCheck_UnknownPair(t *testing.T) {
	result := Check("aspirin", "vitamin c")
	if result.IsPotentiallyRisky {
		t.Error("unknown pair should not be flagged risky")
	}
	if !strings.Contains(result.Advice, "consult") {
		t.Errorf("unknown pair advice must recommend consultation, got %q", result.Advice)
	}
	if result.Pair != [2]string{"aspirin", "vitamin c"} {
		t.Errorf("pair should echo the input, got %v", result.Pair)
	}
}
