package model

import "fmt"

// Coordinates is a validated GPS position.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// NewCoordinates validates and constructs a coordinate pair. Out-of-range
// values are a caller bug, so this is the one input error that propagates.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lng)
}
