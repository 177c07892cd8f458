package models

import (
	"time"

	"gorm.io/gorm"
)

// Valid values for DynamicStopRequest.Status.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DynamicStopRequest is a rider's ad-hoc stop request. RequestedTime is set
// once at creation (UTC) and is immutable; UserID is a weak reference that
// may dangle after the owning user is deleted.
type DynamicStopRequest struct {
	gorm.Model

	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	RequestedTime time.Time `json:"requested_time"`
	Status        string    `json:"status" gorm:"default:'Pending'"`
	UserID        uint      `json:"user_id" gorm:"index"`
}

// ValidStopRequestStatus reports whether s is one of the three enumerated
// statuses. Any status may move to any other; there is no transition order.
func ValidStopRequestStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
