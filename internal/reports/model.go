package reports

import (
	"time"
)

const (
	ReportTypeEvents       = "events"
	ReportTypeHelpRequests = "help-requests"
	ReportTypeMyActivities = "my-activities"

	// Date range constants
	DateRangeDaily   = "daily"
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeYearly  = "yearly"
	DateRangeCustom  = "custom"

	// Report format constants
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// EventReportRow is one of the requester's events with its turnout.
type EventReportRow struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	Location         string     `json:"location"`
	StartDate        *time.Time `json:"start_date"`
	IsOngoing        bool       `json:"is_ongoing"`
	ParticipantCount int        `json:"participant_count"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HelpRequestReportRow is one of the requester's help requests.
type HelpRequestReportRow struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Urgency     string    `json:"urgency"`
	Status      string    `json:"status"`
	HelperCount int       `json:"helper_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityReportRow is one entry of the requester's volunteer history.
type ActivityReportRow struct {
	Type          string    `json:"type"`
	ResourceType  string    `json:"resource_type"`
	ResourceTitle string    `json:"resource_title"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReportData bundles the rows an export call may need.
type ReportData struct {
	Events       []EventReportRow
	HelpRequests []HelpRequestReportRow
	Activities   []ActivityReportRow
}
