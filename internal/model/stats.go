package model

import (
	"math"
	"time"
)

// AdminStats is a demographic snapshot recomputed by the server on every request.
type AdminStats struct {
	Men       int       `json:"men"`
	Women     int       `json:"women"`
	Children  int       `json:"children"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// Slice is one labelled segment of the demographics pie.
type Slice struct {
	Name    string
	Value   int
	Color   string // lipgloss color code
	Percent int    // whole-number share of the pie
}

// Slice colors, one per demographic group.
const (
	ColorMen      = "33"
	ColorWomen    = "36"
	ColorChildren = "220"
)

// Slices returns the pie segments in display order (Men, Women, Children).
// Percent is the share of the three-group sum rounded to a whole number,
// so a zero sum yields zero for every segment.
func (s AdminStats) Slices() []Slice {
	slices := []Slice{
		{Name: "Men", Value: s.Men, Color: ColorMen},
		{Name: "Women", Value: s.Women, Color: ColorWomen},
		{Name: "Children", Value: s.Children, Color: ColorChildren},
	}
	sum := s.Men + s.Women + s.Children
	if sum <= 0 {
		return slices
	}
	for i := range slices {
		slices[i].Percent = int(math.Round(float64(slices[i].Value) * 100 / float64(sum)))
	}
	return slices
}
