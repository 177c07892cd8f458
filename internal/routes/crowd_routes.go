package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
)

func CrowdRoutes(r *gin.Engine, db *gorm.DB) {
	cc := controllers.NewCrowdController(db)

	r.GET("/api/bus_stops", cc.ListBusStops)
	r.GET("/api/crowd_heatmap", cc.CrowdHeatmap)
	r.POST("/submit_crowd_report", cc.SubmitCrowdReport)
	r.POST("/submit_voice_stop", cc.SubmitVoiceStop)
}
