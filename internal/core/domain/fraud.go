package domain

// FraudVerdict is the outcome of screening a candidate operation.
// Flagged entries proceed but are audited; Blocked entries are rejected.
type FraudVerdict struct {
	Flagged bool `json:"flagged"`
	Blocked bool `json:"blocked"`
}
