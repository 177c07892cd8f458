package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
)

func DirectionsRoutes(r *gin.Engine, db *gorm.DB, routingBase, overpassURL string) {
	dc := controllers.NewDirectionsController(db, routingBase, overpassURL)

	r.POST("/get-alternative-routes", dc.GetAlternativeRoutes)
	r.POST("/api/import_stops", dc.ImportStops)
}
