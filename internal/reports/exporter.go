package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
)

// ReportExporter renders report rows in the requested download format.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeEvents:
		return e.exportEventsByFormat(format, timestamp, data.Events)
	case ReportTypeHelpRequests:
		return e.exportHelpRequestsByFormat(format, timestamp, data.HelpRequests)
	case ReportTypeMyActivities:
		return e.exportActivitiesByFormat(format, timestamp, data.Activities)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// EVENTS EXPORTS
//// ============================

func (e *reportExporter) exportEventsByFormat(format, timestamp string, rows []EventReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportEventsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportEventsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportEventsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for events: %s", format)
	}
}

func (e *reportExporter) exportEventsCSV(rows []EventReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Category", "Location", "Start Date", "Ongoing", "Participants", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			r.Title,
			r.Category,
			r.Location,
			formatDate(r.StartDate),
			strconv.FormatBool(r.IsOngoing),
			strconv.Itoa(r.ParticipantCount),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsExcel(rows []EventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Events"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Title", "Category", "Location", "Start Date", "Ongoing", "Participants", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Location)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), formatDate(r.StartDate))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.IsOngoing)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.ParticipantCount)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsPDF(rows []EventReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Events Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"Title", "Category", "Location", "Start Date", "Ongoing", "Participants"}
	widths := []float64{80, 40, 60, 35, 25, 30}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 8, truncate(r.Title, 45), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, truncate(r.Location, 35), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, formatDate(r.StartDate), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 8, strconv.FormatBool(r.IsOngoing), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 8, strconv.Itoa(r.ParticipantCount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// HELP REQUESTS EXPORTS
//// ============================

func (e *reportExporter) exportHelpRequestsByFormat(format, timestamp string, rows []HelpRequestReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportHelpRequestsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("help_requests_report_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportHelpRequestsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("help_requests_report_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportHelpRequestsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("help_requests_report_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for help requests: %s", format)
	}
}

func (e *reportExporter) exportHelpRequestsCSV(rows []HelpRequestReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Urgency", "Status", "Helpers", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			r.Title,
			r.Urgency,
			r.Status,
			strconv.Itoa(r.HelperCount),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportHelpRequestsExcel(rows []HelpRequestReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Help Requests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Title", "Urgency", "Status", "Helpers", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Urgency)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.HelperCount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportHelpRequestsPDF(rows []HelpRequestReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Help Requests Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"Title", "Urgency", "Status", "Helpers", "Created At"}
	widths := []float64{80, 25, 30, 20, 35}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 8, truncate(r.Title, 45), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, r.Urgency, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, r.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, strconv.Itoa(r.HelperCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, r.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// ACTIVITY EXPORTS
//// ============================

func (e *reportExporter) exportActivitiesByFormat(format, timestamp string, rows []ActivityReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportActivitiesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_activities_report_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportActivitiesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_activities_report_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportActivitiesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_activities_report_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for activities: %s", format)
	}
}

func (e *reportExporter) exportActivitiesCSV(rows []ActivityReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Type", "Resource Type", "Resource Title", "Date"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.Type,
			r.ResourceType,
			r.ResourceTitle,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportActivitiesExcel(rows []ActivityReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "My Activities"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Type", "Resource Type", "Resource Title", "Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Type)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.ResourceType)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.ResourceTitle)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportActivitiesPDF(rows []ActivityReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "My Activities Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"Type", "Resource", "Title", "Date"}
	widths := []float64{45, 35, 75, 35}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 8, r.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, r.ResourceType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, truncate(r.ResourceTitle, 42), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, r.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
