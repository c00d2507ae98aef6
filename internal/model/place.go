package model

// BusinessStatus is the operating status reported by the places service.
type BusinessStatus string

const (
	BusinessOperational BusinessStatus = "OPERATIONAL"
)

// Place is a nearby-search result. Places are ephemeral: they live for one
// generation request and are never persisted by this package.
type Place struct {
	Name        string         `json:"name"`
	Address     string         `json:"address,omitempty"`      // vicinity address, may be empty
	Coordinates Coordinates    `json:"coordinates"`
	PlaceID     string         `json:"place_id,omitempty"`     // opaque service identifier
	Types       []string       `json:"types,omitempty"`        // category tags
	Rating      float64        `json:"rating,omitempty"`       // 0.0-5.0, zero when absent
	RatingCount int            `json:"user_ratings_total,omitempty"`
	Status      BusinessStatus `json:"business_status,omitempty"`
}

// HasType reports whether the place carries any of the given type tags.
func (p Place) HasType(tags ...string) bool {
	for _, tag := range tags {
		for _, t := range p.Types {
			if t == tag {
				return true
			}
		}
	}
	return false
}
