package routes

import (
	"github.com/campus-crumbs/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupListingRoutes(protected *gin.RouterGroup, listingController *controllers.ListingController) {
	food := protected.Group("/food")
	{
		food.POST("", listingController.CreateListing)
		food.GET("", listingController.GetListings)
		food.POST("/reserve", listingController.ReserveListing)
		food.POST("/complete", listingController.CompleteListing)
		food.GET("/poster-netid/:id", listingController.GetPosterNetID)
	}
}
