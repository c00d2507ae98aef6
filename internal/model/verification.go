package model

// Verdict is the tri-state result of proof verification.
type Verdict string

const (
	VerdictVerified Verdict = "Verified"
	VerdictUnclear  Verdict = "Unclear"
	VerdictRejected Verdict = "Rejected"
)

// VerdictForConfidence applies the confidence-to-verdict policy. Downstream
// reward logic depends on these exact boundaries: the 0.3 and 0.7 endpoints
// both map to Unclear.
func VerdictForConfidence(confidence float64) Verdict {
	switch {
	case confidence > 0.7:
		return VerdictVerified
	case confidence >= 0.3:
		return VerdictUnclear
	default:
		return VerdictRejected
	}
}

// VerificationOutcome is the result of one proof verification call. Point
// award is gated on Verdict == Verified, not on raw confidence.
type VerificationOutcome struct {
	Confidence      float64  `json:"confidence_score"` // clamped to [0, 1]
	Verdict         Verdict  `json:"verification_result"`
	Reasoning       string   `json:"reasoning"`
	SuggestedPoints int      `json:"suggested_points"` // 0-100
	Observations    []string `json:"key_observations"`
}
