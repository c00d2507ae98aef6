package places

import (
	"testing"

	"github.com/commupath/commupath/internal/model"
)

func TestQualityScore_PerfectPlace(t *testing.T) {
	p := model.Place{
		Name:        "Agodi Gardens",
		Rating:      5.0,
		RatingCount: 250,
		Status:      model.BusinessOperational,
		Types:       []string{"park", "tourist_attraction"},
	}

	if got := QualityScore(p); got != 1.0 {
		t.Errorf("expected perfect place to score exactly 1.0, got %v", got)
	}
}

func TestQualityScore_EmptyPlace(t *testing.T) {
	p := model.Place{
		Name:   "Vacant Lot",
		Status: "CLOSED_PERMANENTLY",
	}

	if got := QualityScore(p); got != 0.0 {
		t.Errorf("expected empty place to score exactly 0.0, got %v", got)
	}
}

func TestQualityScore_AlwaysInRange(t *testing.T) {
	cases := []model.Place{
		{Rating: 5.0, RatingCount: 1000000, Status: model.BusinessOperational, Types: []string{"park", "school", "hospital"}},
		{Rating: 0.1, RatingCount: 1},
		{Rating: 2.5, RatingCount: 50, Status: model.BusinessOperational},
		{Types: []string{"community_center"}},
		{Status: model.BusinessOperational},
	}

	for i, p := range cases {
		got := QualityScore(p)
		if got < 0.0 || got > 1.0 {
			t.Errorf("case %d: score %v out of [0, 1]", i, got)
		}
	}
}

func TestQualityScore_ReviewCountCapsAt100(t *testing.T) {
	few := model.Place{RatingCount: 100}
	many := model.Place{RatingCount: 5000}

	if QualityScore(few) != QualityScore(many) {
		t.Error("expected 100 and 5000 reviews to contribute equally")
	}
}

func TestQualityScore_RewardsCredibilityOverRating(t *testing.T) {
	// A single 5-star review should not outrank a well-reviewed 4.5 place.
	outlier := model.Place{Rating: 5.0, RatingCount: 1, Status: model.BusinessOperational}
	credible := model.Place{Rating: 4.5, RatingCount: 200, Status: model.BusinessOperational}

	if QualityScore(outlier) >= QualityScore(credible) {
		t.Errorf("expected credible place (%v) to outscore outlier (%v)",
			QualityScore(credible), QualityScore(outlier))
	}
}

func TestQualityScore_HighValueTypeBonus(t *testing.T) {
	plain := model.Place{Rating: 4.0, RatingCount: 80, Status: model.BusinessOperational, Types: []string{"cafe"}}
	bonus := model.Place{Rating: 4.0, RatingCount: 80, Status: model.BusinessOperational, Types: []string{"cafe", "park"}}

	diff := QualityScore(bonus) - QualityScore(plain)
	if diff < 0.099 || diff > 0.101 {
		t.Errorf("expected high-value bonus of 0.1, got %v", diff)
	}
}
