package quest

import "github.com/commupath/commupath/internal/model"

// template is a static quest used when every generative tier is down.
type template struct {
	title         string
	description   string
	impactMetric  string
	estimatedTime string
}

var fallbackTemplates = map[model.Category]template{
	model.CategoryEnvironment: {
		title:         "Community Park Cleanup",
		description:   "Organize a cleanup event at a local park. Remove litter, plant flowers, and create a cleaner environment for everyone.",
		impactMetric:  "Clean 200 sq meters of public space",
		estimatedTime: "2-3 hours",
	},
	model.CategorySocial: {
		title:         "Community Meal Sharing",
		description:   "Organize a community meal event where neighbors can share food and connect. Promote social cohesion and reduce isolation.",
		impactMetric:  "Bring together 20+ community members",
		estimatedTime: "3-4 hours",
	},
	model.CategoryEducation: {
		title:         "Free Tutoring Sessions",
		description:   "Provide free tutoring to local students in math or reading. Help improve academic performance in your community.",
		impactMetric:  "Tutor 5-10 students for 2 weeks",
		estimatedTime: "2 hours per week",
	},
	model.CategoryHealth: {
		title:         "Community Fitness Walk",
		description:   "Organize weekly walking groups to promote physical activity and wellness in your community.",
		impactMetric:  "15+ participants per walk",
		estimatedTime: "1 hour per session",
	},
}

// templateFor returns the category's fallback template. Unknown categories
// get the Environment template so this tier stays infallible.
func templateFor(category model.Category) template {
	if t, ok := fallbackTemplates[category]; ok {
		return t
	}
	return fallbackTemplates[model.CategoryEnvironment]
}
