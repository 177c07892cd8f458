package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit_ops/internal/models"
)

func TestCreateCrew_Validation(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	// Missing shift
	rec := doJSON(t, r, http.MethodPost, "/crew",
		map[string]any{"name": "Ravi", "role": "Driver"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Nonexistent assigned route
	rec = doJSON(t, r, http.MethodPost, "/crew",
		map[string]any{"name": "Ravi", "role": "Driver", "shift": "Morning", "assigned_route": 999}, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "route 999 does not exist")
}

func TestCreateCrew_WithValidRoute(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	route := createTestRoute(t, db, "Express", "A", "B")

	rec := doJSON(t, r, http.MethodPost, "/crew", map[string]any{
		"name":           "Ravi",
		"role":           "Conductor",
		"shift":          "Night",
		"contact_number": "9876543210",
		"assigned_route": route.ID,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var member models.Crew
	require.NoError(t, db.Where("name = ?", "Ravi").First(&member).Error)
	require.NotNil(t, member.AssignedRoute)
	assert.Equal(t, route.ID, *member.AssignedRoute)
}

func TestUpdateCrew(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	member := models.Crew{Name: "Ravi", Role: "Driver", Shift: "Morning"}
	require.NoError(t, db.Create(&member).Error)

	rec := doJSON(t, r, http.MethodPut, "/crew/1", map[string]any{"shift": "Evening"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Crew
	require.NoError(t, db.First(&updated, member.ID).Error)
	assert.Equal(t, "Evening", updated.Shift)
	assert.Equal(t, "Ravi", updated.Name)

	// Re-assignment is validated like creation.
	rec = doJSON(t, r, http.MethodPut, "/crew/1", map[string]any{"assigned_route": 42}, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/crew/9999", map[string]any{"shift": "Night"}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCrew(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	member := models.Crew{Name: "Ravi", Role: "Driver", Shift: "Morning"}
	require.NoError(t, db.Create(&member).Error)

	rec := doJSON(t, r, http.MethodDelete, "/crew/1", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/crew/1", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
