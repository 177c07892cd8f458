package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func RouteRoutes(r *gin.Engine, db *gorm.DB) {
	rc := controllers.NewRouteController(db)

	r.GET("/routes", rc.ListRoutes)
	r.GET("/routes/:id", rc.GetRoute)

	admin := r.Group("/routes")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", rc.CreateRoute)
		admin.PUT("/:id", rc.UpdateRoute)
		admin.DELETE("/:id", rc.DeleteRoute)
	}
}
