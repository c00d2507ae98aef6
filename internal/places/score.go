package places

import "github.com/commupath/commupath/internal/model"

// highValueTypes earn the relevance bonus: they are the types most likely
// to host a community quest.
var highValueTypes = []string{"park", "school", "hospital", "community_center"}

// QualityScore computes the popularity/credibility score in [0, 1] used to
// rank candidate places. The weighting rewards statistically credible
// popularity (many reviews) over a single high rating:
//
//	rating/5           x 0.40
//	min(reviews,100)/100 x 0.30
//	operational        +0.20
//	high-value type    +0.10
func QualityScore(p model.Place) float64 {
	score := 0.0

	if p.Rating > 0 {
		score += (p.Rating / 5.0) * 0.4
	}

	if p.RatingCount > 0 {
		reviews := p.RatingCount
		if reviews > 100 {
			reviews = 100
		}
		score += (float64(reviews) / 100.0) * 0.3
	}

	if p.Status == model.BusinessOperational {
		score += 0.2
	}

	if p.HasType(highValueTypes...) {
		score += 0.1
	}

	// Guard against future weight drift.
	if score > 1.0 {
		return 1.0
	}
	return score
}
