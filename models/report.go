package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus is the moderation state of a report.
type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "pending"
	ReviewResolved    ReviewStatus = "resolved"
	ReviewDismissed   ReviewStatus = "dismissed"
	ReviewActionTaken ReviewStatus = "action_taken"
)

// ValidReviewStatus reports whether s is one of the accepted review states.
func ValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewPending, ReviewResolved, ReviewDismissed, ReviewActionTaken:
		return true
	}
	return false
}

// Report is a moderation flag filed by one user against a listing and its
// poster. Reports are write-once; only the review fields change afterwards.
type Report struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID string `gorm:"type:uuid;index;not null" json:"postId"`

	ReporterID     string `gorm:"index;not null" json:"user1ID"`
	ReportedUserID string `gorm:"not null" json:"user2ID"`
	Message        string `gorm:"type:text;not null" json:"message"`

	ReviewStatus ReviewStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"reviewStatus"`
	ReviewedBy   *string      `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time   `json:"reviewedAt,omitempty"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
