package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campus-crumbs/api-go/services"
	"github.com/campus-crumbs/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ListingController struct {
	Listings *services.ListingService
}

type CreateListingRequest struct {
	FoodName       string `json:"foodName" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	Category       string `json:"category" binding:"required"`
	DietaryInfo    string `json:"dietaryInfo"`
	PickupLocation string `json:"pickupLocation" binding:"required"`
	PickupTime     string `json:"pickupTime" binding:"required"`
	Photo          string `json:"photo"`
	ExpirationTime string `json:"expirationTime"`
	CreatedAt      string `json:"createdAt"`
}

type ReserveListingRequest struct {
	FoodID string `json:"food_id" binding:"required"`
}

type CompleteListingRequest struct {
	FoodID string `json:"food_id" binding:"required"`
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{Listings: services.NewListingService(db)}
}

// CreateListing godoc
// @Summary Create a new food post
// @Description Creates a new available food listing for the authenticated user
// @Tags food
// @Accept json
// @Produce json
// @Param listing body CreateListingRequest true "Food post creation request"
// @Success 201 {object} map[string]interface{}
// @Router /food [post]
func (lc *ListingController) CreateListing(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := lc.Listings.Create(services.CreateListingInput{
		FoodName:       req.FoodName,
		Quantity:       req.Quantity,
		Category:       req.Category,
		DietaryInfo:    req.DietaryInfo,
		PickupLocation: req.PickupLocation,
		PickupTime:     req.PickupTime,
		Photo:          req.Photo,
		ExpirationTime: req.ExpirationTime,
		CreatedAt:      req.CreatedAt,
	}, user.NetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Food post created successfully",
		"food_id": listing.ID,
	})
}

// GetListings godoc
// @Summary List all food posts
// @Description Returns every food post, newest first, with photo URIs unwrapped
// @Tags food
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /food [get]
func (lc *ListingController) GetListings(c *gin.Context) {
	listings, err := lc.Listings.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	for i := range listings {
		listings[i].Photo = utils.UnwrapPhotoURI(listings[i].Photo)
	}

	c.JSON(http.StatusOK, gin.H{"food_posts": listings})
}

// ReserveListing godoc
// @Summary Reserve a food post
// @Description Reserves an available food post for the authenticated user
// @Tags food
// @Accept json
// @Produce json
// @Param reservation body ReserveListingRequest true "Reservation request"
// @Success 200 {object} map[string]interface{}
// @Router /food/reserve [post]
func (lc *ListingController) ReserveListing(c *gin.Context) {
	user := utils.GetUser(c)
	var req ReserveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id is required"})
		return
	}

	listing, err := lc.Listings.Reserve(req.FoodID, user.NetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Food item reserved successfully",
		"food_id":    listing.ID,
		"reservedBy": user.NetID,
	})
}

// CompleteListing godoc
// @Summary Complete a reserved transaction
// @Description Marks a reserved food post as completed; only the reserver may do this
// @Tags food
// @Accept json
// @Produce json
// @Param completion body CompleteListingRequest true "Completion request"
// @Success 200 {object} map[string]interface{}
// @Router /food/complete [post]
func (lc *ListingController) CompleteListing(c *gin.Context) {
	user := utils.GetUser(c)
	var req CompleteListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id is required"})
		return
	}

	listing, err := lc.Listings.Complete(req.FoodID, user.NetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction completed successfully",
		"food_id": listing.ID,
		"status":  listing.Status,
	})
}

// GetPosterNetID godoc
// @Summary Get the poster of a food post
// @Description Returns the netId of the user who created the food post
// @Tags food
// @Produce json
// @Param id path string true "Food post ID"
// @Success 200 {object} map[string]interface{}
// @Router /food/poster-netid/{id} [get]
func (lc *ListingController) GetPosterNetID(c *gin.Context) {
	netID, err := lc.Listings.PosterNetID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"netId": netID})
}

// respondServiceError translates the service error taxonomy into HTTP
// statuses. Anything outside the taxonomy is a store failure: it is logged
// here with the underlying error and surfaced as a generic 500 so store
// internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrMalformedID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrListingNotFound), errors.Is(err, services.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyReserved),
		errors.Is(err, services.ErrNoLongerAvailable),
		errors.Is(err, services.ErrNotReserved),
		errors.Is(err, services.ErrInvalidReviewStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotReserver):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to complete this transaction"})
	case errors.Is(err, services.ErrStateChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		// Already logged where the zero-match write was classified.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected store error while handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}
