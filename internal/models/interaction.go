package models

// InteractionResult is the outcome of a medication pair lookup.
type InteractionResult struct {
	Pair               [2]string `json:"pair"`
	IsPotentiallyRisky bool      `json:"isPotentiallyRisky"`
	Reason             string    `json:"reason"`
	Advice             string    `json:"advice"`
}
