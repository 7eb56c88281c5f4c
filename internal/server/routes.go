package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the gin engine with CORS and the API routes.
func SetupRoutes(h *Handler) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if h.cfg.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{h.cfg.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/parse-message", h.ParseMessage)

		appointments := api.Group("/appointments")
		{
			appointments.POST("/schedule", h.ScheduleAppointment)
			appointments.PUT("/:id", h.UpdateAppointment)
			appointments.DELETE("/:id", h.CancelAppointment)
		}
	}

	return r
}
