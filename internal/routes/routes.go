package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "compliance-tracking-backend/internal/handlers"
	"compliance-tracking-backend/internal/repository"
	service "compliance-tracking-backend/internal/services/tracking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	companyRepo := repository.NewCompanyRepository(db)
	obligationRepo := repository.NewObligationRepository(db)
	trackingRepo := repository.NewTrackingRepository(db)

	trackingService := service.NewService(
		companyRepo,
		obligationRepo,
		trackingRepo,
	)

	companyHandler := handler.NewCompanyHandler(trackingService)
	dashboardHandler := handler.NewDashboardHandler(trackingService)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.GET("/obligations", dashboardHandler.ListObligations)
	api.GET("/dashboard", dashboardHandler.GetDashboard)

	// Company routes
	companies := api.Group("/companies")
	{
		companies.GET("", companyHandler.List)
		companies.POST("", companyHandler.Create)
		companies.PATCH("/:id", companyHandler.Edit)
		companies.DELETE("/:id", companyHandler.Delete)
		companies.GET("/:id/obligations", companyHandler.ListAssignments)
	}

	// Tracking entry routes
	tracking := api.Group("/tracking")
	tracking.PATCH("/:id/complete", trackingHandler.Complete)
}
