package model

import "testing"

func TestNewCoordinates_Valid(t *testing.T) {
	c, err := NewCoordinates(7.3775, 3.9470)
	if err != nil {
		t.Fatalf("expected valid coordinates, got error: %v", err)
	}
	if c.Lat != 7.3775 || c.Lng != 3.9470 {
		t.Errorf("coordinates not preserved: %+v", c)
	}

	// Boundary values are valid, not clamped.
	for _, pair := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
		if _, err := NewCoordinates(pair[0], pair[1]); err != nil {
			t.Errorf("expected (%v, %v) to be valid, got: %v", pair[0], pair[1], err)
		}
	}
}

func TestNewCoordinates_OutOfRange(t *testing.T) {
	cases := [][2]float64{
		{-90.001, 0},
		{90.001, 0},
		{0, -180.001},
		{0, 180.001},
		{91, 181},
	}
	for _, pair := range cases {
		if _, err := NewCoordinates(pair[0], pair[1]); err == nil {
			t.Errorf("expected (%v, %v) to be rejected", pair[0], pair[1])
		}
	}
}
