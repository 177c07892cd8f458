package models

import (
	"gorm.io/gorm"
)

// Route is a named transit path. Uniqueness is enforced twice: the
// application pre-checks for distinct conflict messages, and the indexes
// below are the authoritative guard against a check-then-insert race.
type Route struct {
	gorm.Model

	RouteName  string `json:"route_name" gorm:"uniqueIndex"`
	StartPoint string `json:"start_point" gorm:"uniqueIndex:idx_route_endpoints"`
	EndPoint   string `json:"end_point" gorm:"uniqueIndex:idx_route_endpoints"`
}
