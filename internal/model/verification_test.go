package model

import "testing"

func TestVerdictForConfidence_Boundaries(t *testing.T) {
	cases := []struct {
		confidence float64
		want       Verdict
	}{
		{0.71, VerdictVerified},
		{0.70, VerdictUnclear}, // 0.7 itself is Unclear
		{0.30, VerdictUnclear}, // 0.3 itself is Unclear
		{0.29, VerdictRejected},
		{1.0, VerdictVerified},
		{0.0, VerdictRejected},
		{0.5, VerdictUnclear},
	}

	for _, tc := range cases {
		if got := VerdictForConfidence(tc.confidence); got != tc.want {
			t.Errorf("VerdictForConfidence(%v) = %s, want %s", tc.confidence, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if _, err := ParseCategory("Environment"); err != nil {
		t.Errorf("expected Environment to parse: %v", err)
	}
	if _, err := ParseCategory("Gardening"); err == nil {
		t.Error("expected unknown category to be rejected")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"Easy", "Medium", "Hard"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseDifficulty("Extreme"); err == nil {
		t.Error("expected unknown difficulty to be rejected")
	}
}
