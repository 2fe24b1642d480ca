package routes

import (
	"github.com/campus-crumbs/api-go/controllers"
	"github.com/campus-crumbs/api-go/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	listingController := controllers.NewListingController(db)
	reportController := controllers.NewReportController(db)

	// All API routes require an authenticated caller; token issuance is
	// handled by the campus SSO service, not this backend.
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		SetupListingRoutes(protected, listingController)
		SetupReportRoutes(protected, reportController)
	}
}
