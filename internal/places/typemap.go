package places

import "github.com/commupath/commupath/internal/model"

// CategoryTypeMap maps a quest category to the ordered list of place types
// used to query the places service. Built once at startup and treated as
// immutable; tests substitute their own maps.
type CategoryTypeMap map[model.Category][]string

// DefaultCategoryTypes returns the standard category mapping, based on the
// Places API supported types.
func DefaultCategoryTypes() CategoryTypeMap {
	return CategoryTypeMap{
		model.CategoryEnvironment: {
			"park",
			"campground",
			"natural_feature",
			"tourist_attraction",
		},
		model.CategoryEducation: {
			"school",
			"university",
			"library",
			"primary_school",
			"secondary_school",
		},
		model.CategoryHealth: {
			"hospital",
			"doctor",
			"pharmacy",
			"physiotherapist",
			"dentist",
		},
		model.CategorySocial: {
			"community_center",
			"church",
			"mosque",
			"synagogue",
			"hindu_temple",
			"town_hall",
		},
	}
}

// TypesFor returns the type list for a category. Unknown categories map to
// a generic point-of-interest search rather than failing.
func (m CategoryTypeMap) TypesFor(category model.Category) []string {
	if types, ok := m[category]; ok {
		return types
	}
	return []string{"point_of_interest"}
}
