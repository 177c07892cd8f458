package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"transit_ops/internal/config"
	"transit_ops/internal/middleware"
)

// SetupRouter builds the engine, installs the shared middleware and
// registers every resource group against the injected DB handle.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlogger.SetLogger(
		ginlogger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().Str("request_id", c.GetString("request_id")).Logger()
		}),
	))

	AuthRoutes(r, db)
	UserRoutes(r, db)
	RouteRoutes(r, db)
	CrewRoutes(r, db)
	StopRequestRoutes(r, db)
	CrowdRoutes(r, db)
	BusRoutes(r, db)
	DirectionsRoutes(r, db, config.RoutingBaseURL(), config.OverpassURL())

	return r
}
