package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func BusRoutes(r *gin.Engine, db *gorm.DB) {
	bc := controllers.NewBusController(db)

	r.GET("/buses", bc.ListBuses)

	// Status cycling is an inspector action; any authenticated user may
	// toggle, registration is admin-only.
	r.POST("/buses/:id/toggle", middleware.RequireAuth(), bc.ToggleBusStatus)
	r.POST("/buses", middleware.RequireAuthWithRole(models.RoleAdmin), bc.CreateBus)
}
