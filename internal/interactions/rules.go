// Package interactions provides a static medication interaction rule lookup.
package interactions

import (
	"strings"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

type rule struct {
	reason string
	advice string
}

// ruleset maps normalized "a-b" medication pairs to known high-risk
// interactions. Both orders are resolved at lookup time.
var ruleset = map[string]rule{
	"warfarin-ibuprofen": {
		reason: "increased bleeding risk",
		advice: "avoid combo; consult clinician; prefer acetaminophen for pain relief",
	},
	"metformin-contrast dye": {
		reason: "lactic acidosis risk around imaging contrast",
		advice: "hold metformin per imaging protocol",
	},
	"lisinopril-spironolactone": {
		reason: "hyperkalemia risk",
		advice: "monitor potassium, consult clinician",
	},
}

// Check looks up the medication pair in the ruleset. Unknown pairs are not
// flagged as risky but always carry consultation advice.
func Check(medA, medB string) models.InteractionResult {
	normA := strings.ToLower(strings.TrimSpace(medA))
	normB := strings.ToLower(strings.TrimSpace(medB))

	if normA == normB {
		return models.InteractionResult{
			Pair:               [2]string{medA, medB},
			IsPotentiallyRisky: false,
			Reason:             "same medication",
			Advice:             "This appears to be the same medication. Please verify your medication names.",
		}
	}

	r, ok := ruleset[normA+"-"+normB]
	if !ok {
		r, ok = ruleset[normB+"-"+normA]
	}
	if ok {
		return models.InteractionResult{
			Pair:               [2]string{medA, medB},
			IsPotentiallyRisky: true,
			Reason:             r.reason,
			Advice:             r.advice,
		}
	}

	return models.InteractionResult{
		Pair:               [2]string{medA, medB},
		IsPotentiallyRisky: false,
		Reason:             "no known high-risk interaction in our database",
		Advice: "While no high-risk interaction is known, always consult your healthcare provider " +
			"about all medications you are taking. This is for informational purposes only and is not medical advice.",
	}
}
