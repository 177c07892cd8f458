package models

import (
	"gorm.io/gorm"
)

// Crew is a staff member. AssignedRoute is a weak reference to Route:
// validated at creation, nullified when the route is deleted.
type Crew struct {
	gorm.Model

	Name          string `json:"name"`
	Role          string `json:"role"`  // e.g. "Driver", "Conductor"
	Shift         string `json:"shift"` // e.g. "Morning", "Evening", "Night"
	ContactNumber string `json:"contact_number"`
	AssignedRoute *uint  `json:"assigned_route" gorm:"index"`
}
