package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingStatus is the availability state of a listing. The underlying
// values are the color codes the mobile clients already store and render,
// so they must not change.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "green"
	StatusReserved  ListingStatus = "yellow"
	StatusCompleted ListingStatus = "red"
)

// Listing is a single food-sharing post. Status only ever moves forward:
// available -> reserved -> completed.
type Listing struct {
	ID     string        `gorm:"type:uuid;primaryKey" json:"id"`
	Status ListingStatus `gorm:"type:varchar(10);not null;default:'green'" json:"status"`

	FoodName       string `gorm:"not null" json:"foodName"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	Category       string `gorm:"not null" json:"category"`
	DietaryInfo    string `json:"dietaryInfo"`
	PickupLocation string `gorm:"not null" json:"pickupLocation"`
	PickupTime     string `gorm:"not null" json:"pickupTime"`
	Photo          string `gorm:"type:text" json:"photo"` // JSON string {"uri": "..."} from the client
	ExpirationTime string `json:"expirationTime"`
	CreatedAt      string `json:"createdAt"` // client-supplied, stored verbatim

	PostedBy    string  `gorm:"index;not null" json:"postedBy"`
	ReservedBy  *string `json:"reservedBy,omitempty"`
	ReportCount int     `gorm:"not null;default:0" json:"reportCount"`

	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
