package models

import (
	"gorm.io/gorm"
)

// Valid values for Bus.Status. ToggleBusStatus cycles them strictly
// On Time -> Delayed -> Maintenance -> On Time, one step per toggle.
const (
	BusOnTime      = "On Time"
	BusDelayed     = "Delayed"
	BusMaintenance = "Maintenance"
)

// Bus is a fleet vehicle. Position lives in the database rather than an
// in-process list so it survives restarts.
type Bus struct {
	gorm.Model

	Number    string  `json:"number"`
	Status    string  `json:"status" gorm:"default:'On Time'"`
	RouteID   *uint   `json:"route_id" gorm:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NextBusStatus returns the status one step further along the cycle.
func NextBusStatus(current string) string {
	switch current {
	case BusOnTime:
		return BusDelayed
	case BusDelayed:
		return BusMaintenance
	default:
		return BusOnTime
	}
}
