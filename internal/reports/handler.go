package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service ReportService
}

func NewHandler(service ReportService) *Handler {
	return &Handler{Service: service}
}

// GetEventsReport godoc
// @Summary Events report for the caller
// @Tags Reports
// @Produce json
// @Param format query string false "csv, excel or pdf; omit for JSON"
// @Param date_range query string false "daily, weekly, monthly, yearly or custom"
// @Param start_date query string false "YYYY-MM-DD, used with date_range=custom"
// @Param end_date query string false "YYYY-MM-DD, used with date_range=custom"
// @Security BearerAuth
// @Router /reports/events [get]
func (h *Handler) GetEventsReport(c *gin.Context) {
	h.serveReport(c, ReportTypeEvents)
}

// GetHelpRequestsReport godoc
// @Summary Help requests report for the caller
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports/help-requests [get]
func (h *Handler) GetHelpRequestsReport(c *gin.Context) {
	h.serveReport(c, ReportTypeHelpRequests)
}

// GetMyActivitiesReport godoc
// @Summary Activity report for the caller
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Router /reports/my-activities [get]
func (h *Handler) GetMyActivitiesReport(c *gin.Context) {
	h.serveReport(c, ReportTypeMyActivities)
}

func (h *Handler) serveReport(c *gin.Context, reportType string) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	start, end, err := GetDateRange(
		c.DefaultQuery("date_range", DateRangeWeekly),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	format := c.Query("format")
	if format == "" {
		data, err := h.Service.GetReportData(reportType, userID.(string), start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to build report"})
			return
		}
		h.respondJSON(c, reportType, data)
		return
	}

	if format != FormatCSV && format != FormatExcel && format != FormatPDF {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("unsupported format: %s", format)})
		return
	}

	bytes, filename, mimeType, err := h.Service.ExportReport(reportType, format, userID.(string), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to export report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mimeType, bytes)
}

func (h *Handler) respondJSON(c *gin.Context, reportType string, data ReportData) {
	switch reportType {
	case ReportTypeEvents:
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(data.Events), "events": data.Events})
	case ReportTypeHelpRequests:
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(data.HelpRequests), "helpRequests": data.HelpRequests})
	case ReportTypeMyActivities:
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(data.Activities), "activities": data.Activities})
	}
}
