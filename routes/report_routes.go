package routes

import (
	"github.com/campus-crumbs/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	report := protected.Group("/report")
	{
		report.POST("", reportController.SubmitReport)
		report.PUT("/:id", reportController.UpdateReportStatus)
		report.GET("/can-report/:id", reportController.CanReport)
	}

	protected.GET("/reports", reportController.GetReports)
}
