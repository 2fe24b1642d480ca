package services

import (
	"errors"
	"log"
	"strings"

	"github.com/campus-crumbs/api-go/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingService owns the listing lifecycle state machine. It is the only
// writer of a listing's status and reservedBy columns; all transitions go
// through conditional updates so that concurrent callers cannot both succeed.
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

// CreateListingInput carries the descriptive attributes of a new post.
type CreateListingInput struct {
	FoodName       string
	Quantity       int
	Category       string
	DietaryInfo    string
	PickupLocation string
	PickupTime     string
	Photo          string
	ExpirationTime string
	CreatedAt      string
}

// Create validates the input and stores a new available listing.
func (s *ListingService) Create(input CreateListingInput, creatorID string) (*models.Listing, error) {
	if strings.TrimSpace(input.FoodName) == "" ||
		strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.PickupLocation) == "" ||
		strings.TrimSpace(input.PickupTime) == "" ||
		input.Quantity <= 0 {
		return nil, ErrValidation
	}
	if strings.TrimSpace(creatorID) == "" {
		return nil, ErrValidation
	}

	listing := models.Listing{
		Status:         models.StatusAvailable,
		FoodName:       input.FoodName,
		Quantity:       input.Quantity,
		Category:       input.Category,
		DietaryInfo:    input.DietaryInfo,
		PickupLocation: input.PickupLocation,
		PickupTime:     input.PickupTime,
		Photo:          input.Photo,
		ExpirationTime: input.ExpirationTime,
		CreatedAt:      input.CreatedAt,
		PostedBy:       creatorID,
		ReservedBy:     nil,
		ReportCount:    0,
	}

	if err := s.DB.Create(&listing).Error; err != nil {
		return nil, err
	}

	log.Printf("Food post %s created by user %s", listing.ID, creatorID)
	return &listing, nil
}

// GetByID fetches a single listing.
func (s *ListingService) GetByID(id string) (*models.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrMalformedID
	}

	var listing models.Listing
	if err := s.DB.First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// List returns every listing, newest first.
func (s *ListingService) List() ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.Order("timestamp DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// PosterNetID returns the identity of the user who posted the listing.
func (s *ListingService) PosterNetID(id string) (string, error) {
	listing, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	return listing.PostedBy, nil
}

// Reserve transitions a listing from available to reserved on behalf of
// reserverID. The write is guarded by the listing still being available, so
// of several racing callers exactly one succeeds; the rest get a classified
// error derived from a re-read.
func (s *ListingService) Reserve(id, reserverID string) (*models.Listing, error) {
	listing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch listing.Status {
	case models.StatusReserved:
		return nil, ErrAlreadyReserved
	case models.StatusCompleted:
		return nil, ErrNoLongerAvailable
	case models.StatusAvailable:
		// proceed
	default:
		log.Printf("Listing %s has unexpected status %q", id, listing.Status)
		return nil, ErrNoLongerAvailable
	}

	res := s.DB.Model(&models.Listing{}).
		Where("id = ? AND status = ?", id, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":      models.StatusReserved,
			"reserved_by": reserverID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Lost the race. Re-read to report what actually happened.
		return nil, s.classifyReserveConflict(id)
	}

	log.Printf("Food post %s reserved by user %s", id, reserverID)
	listing.Status = models.StatusReserved
	listing.ReservedBy = &reserverID
	return listing, nil
}

func (s *ListingService) classifyReserveConflict(id string) error {
	var current models.Listing
	if err := s.DB.First(&current, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	switch current.Status {
	case models.StatusReserved:
		return ErrAlreadyReserved
	case models.StatusCompleted:
		return ErrNoLongerAvailable
	}
	log.Printf("Reserve on listing %s matched no rows but status is still %q", id, current.Status)
	return ErrConflict
}

// Complete finalizes a reserved listing. Only the user recorded in
// reservedBy may complete it; the conditional write re-checks both the
// status and the reserver at write time.
func (s *ListingService) Complete(id, callerID string) (*models.Listing, error) {
	listing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.StatusReserved {
		return nil, ErrNotReserved
	}
	if listing.ReservedBy == nil || *listing.ReservedBy != callerID {
		return nil, ErrNotReserver
	}

	res := s.DB.Model(&models.Listing{}).
		Where("id = ? AND status = ? AND reserved_by = ?", id, models.StatusReserved, callerID).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Lost the race. Re-read to report what actually happened.
		return nil, s.classifyCompleteConflict(id, callerID)
	}

	log.Printf("Transaction completed for food post %s by user %s", id, callerID)
	listing.Status = models.StatusCompleted
	return listing, nil
}

func (s *ListingService) classifyCompleteConflict(id, callerID string) error {
	var current models.Listing
	if err := s.DB.First(&current, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return err
	}
	if current.Status != models.StatusReserved || current.ReservedBy == nil || *current.ReservedBy != callerID {
		return ErrStateChanged
	}
	log.Printf("Complete on listing %s matched no rows with state unchanged", id)
	return ErrConflict
}
