package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextBusStatus(t *testing.T) {
	assert.Equal(t, BusDelayed, NextBusStatus(BusOnTime))
	assert.Equal(t, BusMaintenance, NextBusStatus(BusDelayed))
	assert.Equal(t, BusOnTime, NextBusStatus(BusMaintenance))

	// An unrecognized status resets to the start of the cycle.
	assert.Equal(t, BusOnTime, NextBusStatus("Broken"))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleDriver))
	assert.True(t, ValidRole(RolePassenger))
	assert.False(t, ValidRole("admin")) // case-sensitive, exact match
	assert.False(t, ValidRole(""))
}

func TestValidStopRequestStatus(t *testing.T) {
	assert.True(t, ValidStopRequestStatus(StatusPending))
	assert.True(t, ValidStopRequestStatus(StatusApproved))
	assert.True(t, ValidStopRequestStatus(StatusRejected))
	assert.False(t, ValidStopRequestStatus("Cancelled"))
}
