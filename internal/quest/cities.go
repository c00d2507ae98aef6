package quest

import (
	"fmt"

	"github.com/commupath/commupath/internal/model"
)

// cityRegion is a coarse bounding box mapped to a city name, used purely as
// a cosmetic label on the traditional generation tier.
type cityRegion struct {
	name                           string
	minLat, maxLat, minLng, maxLng float64
}

var cityRegions = []cityRegion{
	{"Ibadan, Nigeria", 7.3, 7.5, 3.8, 4.0},
	{"Lagos, Nigeria", 6.4, 6.6, 3.3, 3.5},
	{"Nairobi, Kenya", -1.3, -1.2, 36.8, 36.9},
}

// cityLabel maps coordinates to a known city name, or a generic label.
func cityLabel(c model.Coordinates) string {
	for _, r := range cityRegions {
		if c.Lat >= r.minLat && c.Lat <= r.maxLat && c.Lng >= r.minLng && c.Lng <= r.maxLng {
			return r.name
		}
	}
	return fmt.Sprintf("Location near (%.2f, %.2f)", c.Lat, c.Lng)
}
