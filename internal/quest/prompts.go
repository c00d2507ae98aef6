package quest

import (
	"fmt"
	"strings"

	"github.com/commupath/commupath/internal/llm"
	"github.com/commupath/commupath/internal/model"
)

// questFieldSchemas is the field set shared by both generation prompts.
func questFieldSchemas() map[string]*llm.Schema {
	return map[string]*llm.Schema{
		"title":             llm.String("Quest title, 5-100 characters"),
		"description":       llm.String("Detailed, actionable quest description"),
		"difficulty":        llm.StringEnum("Effort level", "Easy", "Medium", "Hard"),
		"impact_metric":     llm.String("Measurable impact metric, e.g. 'Plant 50 trees'"),
		"estimated_time":    llm.String("Estimated time to complete"),
		"community_benefit": llm.String("Concrete community benefit"),
	}
}

// placeAwareSchema adds the candidate selection index. The index is
// zero-based into the candidate list of the prompt.
func placeAwareSchema(candidates int) *llm.Schema {
	props := questFieldSchemas()
	props["location_index"] = llm.Integer(fmt.Sprintf("Zero-based index of the chosen location, 0 to %d", candidates-1))
	return llm.Object(props, "title", "description", "difficulty", "impact_metric", "location_index")
}

func traditionalSchema() *llm.Schema {
	return llm.Object(questFieldSchemas(), "title", "description", "difficulty", "impact_metric")
}

// buildPlaceAwarePrompt embeds the ranked candidates by name, address,
// rating and tags — never raw coordinates, which biases the model toward
// selecting a named place instead of inventing one.
func buildPlaceAwarePrompt(candidates []model.Place, category model.Category, preferences string) string {
	var b strings.Builder

	b.WriteString("You are the Community Architect AI, an expert at transforming personal resolutions into actionable community impact quests.\n\n")
	b.WriteString("Generate a specific, actionable community impact quest anchored to ONE of the real places below.\n\n")
	fmt.Fprintf(&b, "**Resolution Category**: %s\n", category)
	fmt.Fprintf(&b, "**User Preferences**: %s\n\n", orNone(preferences))

	b.WriteString("**Candidate Locations** (choose exactly one by its index):\n")
	for i, p := range candidates {
		fmt.Fprintf(&b, "%d. %s", i, p.Name)
		if p.Address != "" {
			fmt.Fprintf(&b, " — %s", p.Address)
		}
		if p.Rating > 0 {
			fmt.Fprintf(&b, " (rated %.1f from %d reviews)", p.Rating, p.RatingCount)
		}
		if len(p.Types) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(p.Types, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(`
**Requirements**:
1. Set location_index to the chosen candidate's index
2. The quest MUST take place at, and be specific to, the chosen location
3. It should address a real community need in the given category
4. It must be actionable (completable within days/weeks)
5. Include a measurable impact metric (e.g., "Plant 50 trees", "Tutor 10 students")
6. Specify community benefit in concrete terms
7. Assign appropriate difficulty (Easy: 1-2 hours, Medium: 3-5 hours, Hard: 6+ hours or multiple sessions)

Be specific, realistic, and inspiring.`)

	return b.String()
}

// buildTraditionalPrompt is the degraded prompt: raw coordinates plus a
// coarse city label, no candidate selection.
func buildTraditionalPrompt(coords model.Coordinates, label string, category model.Category, preferences string) string {
	var b strings.Builder

	b.WriteString("You are the Community Architect AI, an expert at transforming personal resolutions into actionable community impact quests.\n\n")
	b.WriteString("Generate a specific, actionable community impact quest based on the following information:\n\n")
	fmt.Fprintf(&b, "**Location**: %s (Lat: %v, Lng: %v)\n", label, coords.Lat, coords.Lng)
	fmt.Fprintf(&b, "**Resolution Category**: %s\n", category)
	fmt.Fprintf(&b, "**User Preferences**: %s\n", orNone(preferences))

	fmt.Fprintf(&b, `
**Requirements**:
1. The quest MUST be location-specific and relevant to %s
2. It should address a real community need in the %s category
3. It must be actionable (user can complete it within days/weeks)
4. Include a measurable impact metric (e.g., "Plant 50 trees", "Tutor 10 students")
5. Specify community benefit in concrete terms
6. Assign appropriate difficulty (Easy: 1-2 hours, Medium: 3-5 hours, Hard: 6+ hours or multiple sessions)

Be specific, realistic, and inspiring.`, label, category)

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None specified"
	}
	return s
}
