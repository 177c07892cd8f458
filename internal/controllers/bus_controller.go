package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/models"
)

// BusController handles fleet vehicles and the inspector status toggle.
type BusController struct {
	DB *gorm.DB
}

func NewBusController(db *gorm.DB) *BusController {
	return &BusController{DB: db}
}

// ListBuses returns the fleet with current status and position.
func (bc *BusController) ListBuses(c *gin.Context) {
	var buses []models.Bus
	if err := bc.DB.Order("id").Find(&buses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch buses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buses})
}

// CreateBus registers a fleet vehicle. Status always starts at "On Time".
func (bc *BusController) CreateBus(c *gin.Context) {
	var input struct {
		Number    string  `json:"number" binding:"required"`
		RouteID   *uint   `json:"route_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RouteID != nil {
		var count int64
		bc.DB.Model(&models.Route{}).Where("id = ?", *input.RouteID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("route %d does not exist", *input.RouteID)})
			return
		}
	}

	bus := models.Bus{
		Number:    input.Number,
		Status:    models.BusOnTime,
		RouteID:   input.RouteID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := bc.DB.Create(&bus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create bus: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

// ToggleBusStatus advances the status exactly one step along
// On Time -> Delayed -> Maintenance -> On Time and persists it.
func (bc *BusController) ToggleBusStatus(c *gin.Context) {
	var bus models.Bus
	if err := bc.DB.First(&bus, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	bus.Status = models.NextBusStatus(bus.Status)
	if err := bc.DB.Save(&bus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}
