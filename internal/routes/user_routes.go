package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
	"transit_ops/internal/middleware"
	"transit_ops/internal/models"
)

func UserRoutes(r *gin.Engine, db *gorm.DB) {
	uc := controllers.NewUserController(db)

	users := r.Group("/users")
	users.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		users.GET("", uc.ListUsers)
		users.PUT("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeleteUser)
	}
}
