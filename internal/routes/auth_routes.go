package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"transit_ops/internal/controllers"
)

func AuthRoutes(r *gin.Engine, db *gorm.DB) {
	ac := controllers.NewAuthController(db)

	r.POST("/register", ac.Register)
	r.POST("/login", ac.Login)
}
