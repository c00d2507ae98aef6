package model

import "fmt"

// Category classifies a resolution / quest.
type Category string

const (
	CategoryEnvironment Category = "Environment"
	CategorySocial      Category = "Social"
	CategoryEducation   Category = "Education"
	CategoryHealth      Category = "Health"
)

// Categories lists the known quest categories in display order.
func Categories() []Category {
	return []Category{CategoryEnvironment, CategorySocial, CategoryEducation, CategoryHealth}
}

// ParseCategory resolves a category name. Unknown names are an error at the
// API edge; the discovery layer itself accepts any category and falls back
// to a generic place-type list.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (known: Environment, Social, Education, Health)", s)
}

// Difficulty is the quest effort level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty validates a difficulty string coming back from the
// generative service.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Quest is a generated community impact quest. Immutable after
// construction; ownership transfers to the caller for persistence.
type Quest struct {
	QuestID          string      `json:"quest_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Difficulty       Difficulty  `json:"difficulty"`
	ImpactMetric     string      `json:"impact_metric"`
	Location         Coordinates `json:"location"`
	Category         Category    `json:"category"`
	EstimatedTime    string      `json:"estimated_time,omitempty"`
	CommunityBenefit string      `json:"community_benefit,omitempty"`
}

// Tier identifies which generation strategy produced an outcome.
type Tier string

const (
	TierPlaceAware  Tier = "place_aware" // anchored to a real discovered place
	TierTraditional Tier = "traditional" // coordinates-only prompt, no real place
	TierHardcoded   Tier = "hardcoded"   // static category template
)

// Provenance records how a quest was produced and whether it is anchored to
// a real-world place.
type Provenance struct {
	Tier          Tier   `json:"tier"`
	UsedRealPlace bool   `json:"used_real_place"`
	LocationName  string `json:"location_name,omitempty"`
	Address       string `json:"address,omitempty"`
	PlaceID       string `json:"place_id,omitempty"`
}

// GenerationOutcome is what the orchestrator hands back to the caller:
// the quest plus provenance. The core holds no further reference to it.
type GenerationOutcome struct {
	Quest      Quest      `json:"quest"`
	Provenance Provenance `json:"provenance"`
}
