package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/models"
)

// CrewController handles the crew CRUD endpoints.
type CrewController struct {
	DB *gorm.DB
}

func NewCrewController(db *gorm.DB) *CrewController {
	return &CrewController{DB: db}
}

// ListCrew returns all crew members.
func (cc *CrewController) ListCrew(c *gin.Context) {
	var crew []models.Crew
	if err := cc.DB.Order("id").Find(&crew).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch crew"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crew})
}

// GetCrew returns a single crew member by id.
func (cc *CrewController) GetCrew(c *gin.Context) {
	var member models.Crew
	if err := cc.DB.First(&member, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"crew": member})
}

// routeExists checks the weak AssignedRoute reference at write time.
func (cc *CrewController) routeExists(id uint) bool {
	var count int64
	cc.DB.Model(&models.Route{}).Where("id = ?", id).Count(&count)
	return count > 0
}

// CreateCrew adds a staff member. An assigned_route, when present, must
// reference an existing route.
func (cc *CrewController) CreateCrew(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		Role          string `json:"role" binding:"required"`
		Shift         string `json:"shift" binding:"required"`
		ContactNumber string `json:"contact_number"`
		AssignedRoute *uint  `json:"assigned_route"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.AssignedRoute != nil && !cc.routeExists(*input.AssignedRoute) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("route %d does not exist", *input.AssignedRoute)})
		return
	}

	member := models.Crew{
		Name:          input.Name,
		Role:          input.Role,
		Shift:         input.Shift,
		ContactNumber: input.ContactNumber,
		AssignedRoute: input.AssignedRoute,
	}
	if err := cc.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create crew member: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"crew": member})
}

// UpdateCrew applies a partial update; assigned_route is revalidated when
// supplied.
func (cc *CrewController) UpdateCrew(c *gin.Context) {
	var member models.Crew
	if err := cc.DB.First(&member, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name          *string `json:"name"`
		Role          *string `json:"role"`
		Shift         *string `json:"shift"`
		ContactNumber *string `json:"contact_number"`
		AssignedRoute *uint   `json:"assigned_route"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.AssignedRoute != nil && !cc.routeExists(*input.AssignedRoute) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("route %d does not exist", *input.AssignedRoute)})
		return
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Shift != nil {
		member.Shift = *input.Shift
	}
	if input.ContactNumber != nil {
		member.ContactNumber = *input.ContactNumber
	}
	if input.AssignedRoute != nil {
		member.AssignedRoute = input.AssignedRoute
	}

	if err := cc.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"crew": member})
}

// DeleteCrew removes a crew member by id.
func (cc *CrewController) DeleteCrew(c *gin.Context) {
	var member models.Crew
	if err := cc.DB.First(&member, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Crew member not found"})
		return
	}

	if err := cc.DB.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crew member deleted successfully!"})
}
