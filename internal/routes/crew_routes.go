package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func CrewRoutes(r *gin.Engine, db *gorm.DB) {
	cc := controllers.NewCrewController(db)

	r.GET("/crew", cc.ListCrew)
	r.GET("/crew/:id", cc.GetCrew)

	admin := r.Group("/crew")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("", cc.CreateCrew)
		admin.PUT("/:id", cc.UpdateCrew)
		admin.DELETE("/:id", cc.DeleteCrew)
	}
}
