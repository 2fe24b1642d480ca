package services

import (
	"errors"
	"log"
	"time"

	"github.com/campus-crumbs/api-go/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService records moderation reports against listings and keeps the
// denormalized report counter on the listing up to date. The one-report-per-
// reporter rule is advisory: CanReport checks it, Submit does not.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// CanReport reports whether userID may file a report against the listing.
// It is a pure read with no side effects.
func (s *ReportService) CanReport(listingID, userID string) (bool, string, error) {
	if _, err := uuid.Parse(listingID); err != nil {
		return false, "", ErrMalformedID
	}

	var listing models.Listing
	if err := s.DB.Select("posted_by").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", ErrListingNotFound
		}
		return false, "", err
	}

	if listing.PostedBy == userID {
		return false, "You cannot report your own post", nil
	}

	var existing models.Report
	err := s.DB.Select("id").
		Where("listing_id = ? AND reporter_id = ?", listingID, userID).
		First(&existing).Error
	if err == nil {
		return false, "You have already reported this post", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", err
	}

	return true, "", nil
}

// Submit files a report against the listing and bumps its report counter.
// The counter bump is best effort: if the listing vanishes between the
// insert and the increment the report still stands and the miss is logged.
func (s *ReportService) Submit(listingID, reporterID, reportedUserID, message string) (*models.Report, error) {
	if _, err := uuid.Parse(listingID); err != nil {
		return nil, ErrMalformedID
	}

	var listing models.Listing
	if err := s.DB.Select("id").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	report := models.Report{
		ListingID:      listingID,
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Message:        message,
		ReviewStatus:   models.ReviewPending,
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	log.Printf("Report %s filed against post %s by user %s", report.ID, listingID, reporterID)

	res := s.DB.Model(&models.Listing{}).
		Where("id = ?", listingID).
		Update("report_count", gorm.Expr("report_count + ?", 1))
	if res.Error != nil {
		log.Printf("Failed to increment report count for post %s: %v", listingID, res.Error)
	} else if res.RowsAffected == 0 {
		log.Printf("Post %s disappeared before its report count could be incremented", listingID)
	}

	return &report, nil
}

// UpdateReviewStatus records a moderation decision on a report. The write is
// unconditional; review is a single-actor administrative action and the last
// writer wins.
func (s *ReportService) UpdateReviewStatus(reportID string, status models.ReviewStatus, reviewerID string) error {
	if !models.ValidReviewStatus(status) {
		return ErrInvalidReviewStatus
	}
	if _, err := uuid.Parse(reportID); err != nil {
		return ErrMalformedID
	}

	now := time.Now()
	res := s.DB.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"review_status": status,
			"reviewed_by":   reviewerID,
			"reviewed_at":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReportNotFound
	}

	log.Printf("Report %s marked %s by %s", reportID, status, reviewerID)
	return nil
}

// List returns every report, newest first.
func (s *ReportService) List() ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.Order("submitted_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
