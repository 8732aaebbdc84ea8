package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEventRows() []EventReportRow {
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return []EventReportRow{
		{
			ID:               "ev-1",
			Title:            "Beach Cleanup",
			Category:         "environment",
			Location:         "Cox's Bazar",
			StartDate:        &start,
			IsOngoing:        false,
			ParticipantCount: 12,
			CreatedAt:        time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "ev-2",
			Title:     "Weekly tutoring",
			IsOngoing: true,
			CreatedAt: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportEventsCSV(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, mimeType, err := exporter.Export(ReportTypeEvents, FormatCSV, ReportData{
		Events: sampleEventRows(),
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mimeType)
	assert.Regexp(t, `^events_report_\d{8}_\d{6}\.csv$`, filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Title", "Category", "Location", "Start Date", "Ongoing", "Participants", "Created At"}, records[0])
	assert.Equal(t, "Beach Cleanup", records[1][1])
	assert.Equal(t, "2026-10-01", records[1][4])
	assert.Equal(t, "12", records[1][6])
	// nil start date renders empty
	assert.Equal(t, "", records[2][4])
	assert.Equal(t, "true", records[2][5])
}

func TestExportHelpRequestsCSV(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, mimeType, err := exporter.Export(ReportTypeHelpRequests, FormatCSV, ReportData{
		HelpRequests: []HelpRequestReportRow{
			{ID: "hr-1", Title: "Winter clothes", Urgency: "high", Status: "in_progress", HelperCount: 3, CreatedAt: time.Now()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mimeType)
	assert.Regexp(t, `^help_requests_report_\d{8}_\d{6}\.csv$`, filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Winter clothes", records[1][1])
	assert.Equal(t, "high", records[1][2])
	assert.Equal(t, "3", records[1][4])
}

func TestExportActivitiesExcel(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, mimeType, err := exporter.Export(ReportTypeMyActivities, FormatExcel, ReportData{
		Activities: []ActivityReportRow{
			{Type: "EVENT_REGISTERED", ResourceType: "event", ResourceTitle: "Beach Cleanup", CreatedAt: time.Now()},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Regexp(t, `^my_activities_report_\d{8}_\d{6}\.xlsx$`, filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mimeType)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportEventsPDF(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, mimeType, err := exporter.Export(ReportTypeEvents, FormatPDF, ReportData{
		Events: sampleEventRows(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Regexp(t, `^events_report_\d{8}_\d{6}\.pdf$`, filename)
	assert.Equal(t, "application/pdf", mimeType)
	assert.Equal(t, []byte("%PDF"), data[:4])
}

func TestExportRejectsUnknownTypeAndFormat(t *testing.T) {
	exporter := NewReportExporter()

	_, _, _, err := exporter.Export("bookings", FormatCSV, ReportData{})
	assert.Error(t, err)

	_, _, _, err = exporter.Export(ReportTypeEvents, "docx", ReportData{})
	assert.Error(t, err)
}

func TestGetDateRangeCustom(t *testing.T) {
	start, end, err := GetDateRange(DateRangeCustom, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.True(t, end.After(start))

	_, _, err = GetDateRange(DateRangeCustom, "", "")
	assert.Error(t, err)

	_, _, err = GetDateRange(DateRangeCustom, "2026-02-01", "2026-01-01")
	assert.Error(t, err)
}
