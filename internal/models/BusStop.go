package models

import (
	"gorm.io/gorm"
)

// BusStop is a named physical stop. Coordinates are stored as text to
// preserve the precision and formatting they were submitted with; the
// heatmap parses them back to numbers on the way out.
type BusStop struct {
	gorm.Model

	Name      string `json:"name" gorm:"uniqueIndex"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
