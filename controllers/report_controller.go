package controllers

import (
	"net/http"

	"github.com/campus-crumbs/api-go/models"
	"github.com/campus-crumbs/api-go/services"
	"github.com/campus-crumbs/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	Reports *services.ReportService
}

type SubmitReportRequest struct {
	PostID         string `json:"postId" binding:"required"`
	ReportedUserID string `json:"reportedUserId" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Reports: services.NewReportService(db)}
}

// SubmitReport godoc
// @Summary Report a food post
// @Description Files a moderation report against a food post and its poster
// @Tags reports
// @Accept json
// @Produce json
// @Param report body SubmitReportRequest true "Report submission"
// @Success 201 {object} map[string]interface{}
// @Router /report [post]
func (rc *ReportController) SubmitReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := rc.Reports.Submit(req.PostID, user.NetID, req.ReportedUserID, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}

// GetReports godoc
// @Summary List all reports
// @Description Returns every report, newest first, for moderation review
// @Tags reports
// @Produce json
// @Success 200 {array} models.Report
// @Router /reports [get]
func (rc *ReportController) GetReports(c *gin.Context) {
	reports, err := rc.Reports.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// UpdateReportStatus godoc
// @Summary Update a report's review status
// @Description Records a moderation decision on a report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param status body UpdateReportStatusRequest true "New review status"
// @Success 200 {object} map[string]interface{}
// @Router /report/{id} [put]
func (rc *ReportController) UpdateReportStatus(c *gin.Context) {
	user := utils.GetUser(c)
	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := rc.Reports.UpdateReviewStatus(c.Param("id"), models.ReviewStatus(req.Status), user.NetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report status updated successfully"})
}

// CanReport godoc
// @Summary Check report eligibility
// @Description Tells whether the authenticated user may report the food post
// @Tags reports
// @Produce json
// @Param id path string true "Food post ID"
// @Success 200 {object} map[string]interface{}
// @Router /report/can-report/{id} [get]
func (rc *ReportController) CanReport(c *gin.Context) {
	user := utils.GetUser(c)

	allowed, reason, err := rc.Reports.CanReport(c.Param("id"), user.NetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"canReport": allowed}
	if reason != "" {
		resp["reason"] = reason
	}
	c.JSON(http.StatusOK, resp)
}
