package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func StopRequestRoutes(r *gin.Engine, db *gorm.DB) {
	sc := controllers.NewStopRequestController(db)

	r.GET("/dynamic_requests", sc.ListRequests)

	authed := r.Group("/dynamic_requests")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("", sc.CreateRequest)
		authed.PUT("/:id", sc.UpdateRequest)
	}

	admin := r.Group("/dynamic_requests")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.DELETE("/:id", sc.DeleteRequest)
	}
}
