package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit_ops/internal/models"
)

func routePayload(name, start, end string) map[string]any {
	return map[string]any{"route_name": name, "start_point": start, "end_point": end}
}

func TestCreateRoute_RequiresAdmin(t *testing.T) {
	r, db := setupTestRouter(t)
	_, driverToken := createTestUser(t, db, "driver1", models.RoleDriver)

	rec := doJSON(t, r, http.MethodPost, "/routes", routePayload("Express", "A", "B"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Exact-match role gate: a Driver token is not enough.
	rec = doJSON(t, r, http.MethodPost, "/routes", routePayload("Express", "A", "B"), driverToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateRoute_DuplicateChecksOrdered(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	rec := doJSON(t, r, http.MethodPost, "/routes", routePayload("Express", "A", "B"), admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Identical name and endpoints: the combined message, not either
	// single-duplicate one.
	rec = doJSON(t, r, http.MethodPost, "/routes", routePayload("Express", "A", "B"), admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "name and endpoints both duplicate")

	// Name collides, endpoints differ.
	rec = doJSON(t, r, http.MethodPost, "/routes", routePayload("Express", "C", "D"), admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "route name already exists")

	// Endpoints collide, name differs.
	rec = doJSON(t, r, http.MethodPost, "/routes", routePayload("Limited", "A", "B"), admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "route endpoints already exist")
}

func TestCreateRoute_MissingFields(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	rec := doJSON(t, r, http.MethodPost, "/routes", map[string]any{"route_name": "Express"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoute(t *testing.T) {
	r, db := setupTestRouter(t)
	route := createTestRoute(t, db, "Express", "A", "B")

	rec := doJSON(t, r, http.MethodGet, "/routes/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/routes/1", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), route.RouteName)
}

func TestUpdateRoute_PartialOnly(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	route := createTestRoute(t, db, "Express", "A", "B")

	rec := doJSON(t, r, http.MethodPut, "/routes/1", map[string]any{"start_point": "A2"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Route
	require.NoError(t, db.First(&updated, route.ID).Error)
	assert.Equal(t, "A2", updated.StartPoint)
	assert.Equal(t, "Express", updated.RouteName) // untouched
	assert.Equal(t, "B", updated.EndPoint)        // untouched

	rec = doJSON(t, r, http.MethodPut, "/routes/9999", map[string]any{"start_point": "X"}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRoute_NullifiesCrewAssignment(t *testing.T) {
	r, db := setupTestRouter(t)
	_, admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	route := createTestRoute(t, db, "Express", "A", "B")

	crew := models.Crew{Name: "Ravi", Role: "Conductor", Shift: "Morning", AssignedRoute: &route.ID}
	require.NoError(t, db.Create(&crew).Error)

	rec := doJSON(t, r, http.MethodDelete, "/routes/1", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var remaining models.Crew
	require.NoError(t, db.First(&remaining, crew.ID).Error)
	assert.Nil(t, remaining.AssignedRoute)

	rec = doJSON(t, r, http.MethodDelete, "/routes/1", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
