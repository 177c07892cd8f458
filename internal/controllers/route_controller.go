package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_ops/internal/apperrors"
	"transit_ops/internal/models"
)

// RouteController handles the route CRUD endpoints.
type RouteController struct {
	DB *gorm.DB
}

func NewRouteController(db *gorm.DB) *RouteController {
	return &RouteController{DB: db}
}

// ListRoutes returns every route in insertion order.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	var routes []models.Route
	if err := rc.DB.Order("id").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch routes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": routes})
}

// GetRoute returns a single route by id.
func (rc *RouteController) GetRoute(c *gin.Context) {
	var route models.Route
	if err := rc.DB.First(&route, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

type createRouteInput struct {
	RouteName  string `json:"route_name" binding:"required"`
	StartPoint string `json:"start_point" binding:"required"`
	EndPoint   string `json:"end_point" binding:"required"`
}

// checkRouteConflicts enforces the two independent uniqueness rules with
// distinct messages. The combined case is checked first: a route colliding
// on both name and endpoints must report the combined message, not either
// single one.
func (rc *RouteController) checkRouteConflicts(in createRouteInput) error {
	var count int64
	rc.DB.Model(&models.Route{}).
		Where("route_name = ? AND start_point = ? AND end_point = ?", in.RouteName, in.StartPoint, in.EndPoint).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("%w: route name and endpoints both duplicate an existing route", apperrors.ErrConflict)
	}

	rc.DB.Model(&models.Route{}).Where("route_name = ?", in.RouteName).Count(&count)
	if count > 0 {
		return fmt.Errorf("%w: route name already exists", apperrors.ErrConflict)
	}

	rc.DB.Model(&models.Route{}).
		Where("start_point = ? AND end_point = ?", in.StartPoint, in.EndPoint).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("%w: route endpoints already exist", apperrors.ErrConflict)
	}

	return nil
}

// CreateRoute adds a new route after the ordered duplicate checks. The
// unique indexes on routes back-stop the check-then-insert race; a 23505
// from a lost race still answers 409.
func (rc *RouteController) CreateRoute(c *gin.Context) {
	var input createRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rc.checkRouteConflicts(input); err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	route := models.Route{
		RouteName:  input.RouteName,
		StartPoint: input.StartPoint,
		EndPoint:   input.EndPoint,
	}
	if err := rc.DB.Create(&route).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "route already exists"})
			return
		}
		logrus.WithError(err).Error("CreateRoute: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create route"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// UpdateRoute applies a partial update. Duplicate constraints are not
// re-checked here; creation and update are deliberately asymmetric, with
// the unique indexes still guarding a true collision.
func (rc *RouteController) UpdateRoute(c *gin.Context) {
	var route models.Route
	if err := rc.DB.First(&route, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		RouteName  *string `json:"route_name"`
		StartPoint *string `json:"start_point"`
		EndPoint   *string `json:"end_point"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RouteName != nil {
		route.RouteName = *input.RouteName
	}
	if input.StartPoint != nil {
		route.StartPoint = *input.StartPoint
	}
	if input.EndPoint != nil {
		route.EndPoint = *input.EndPoint
	}

	if err := rc.DB.Save(&route).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "route already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DeleteRoute removes a route and nullifies crew assignments that pointed
// at it, in one transaction, so no crew record is left dangling.
func (rc *RouteController) DeleteRoute(c *gin.Context) {
	var route models.Route
	if err := rc.DB.First(&route, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
		return
	}

	if err := tx.Model(&models.Crew{}).
		Where("assigned_route = ?", route.ID).
		Update("assigned_route", nil).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unassign crew: " + err.Error()})
		return
	}

	if err := tx.Delete(&route).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete route: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully!"})
}
