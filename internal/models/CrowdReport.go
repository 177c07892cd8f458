package models

import (
	"time"

	"gorm.io/gorm"
)

// CrowdReport is an append-only crowd-level observation for a stop. There
// is no update path; the "current" level per stop is derived by selecting
// the report with the maximum timestamp.
type CrowdReport struct {
	gorm.Model

	StopID          uint      `json:"stop_id" gorm:"index"`
	CrowdLevel      string    `json:"crowd_level"` // e.g. "Low", "Medium", "High"
	ReportedByVoice bool      `json:"reported_by_voice" gorm:"default:false"`
	Timestamp       time.Time `json:"timestamp"`
}
