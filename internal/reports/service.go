package reports

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReportService performs business logic and coordinates repo + exporter.
type ReportService interface {
	GetReportData(reportType, userID string, start, end time.Time) (ReportData, error)
	ExportReport(reportType, format, userID string, start, end time.Time) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	logger   *zap.Logger
}

func NewReportService(repo ReportRepository, exporter ReportExporter, logger *zap.Logger) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
	}
}

// GetReportData fetches the rows for the caller's own records within the window.
func (s *reportService) GetReportData(reportType, userID string, start, end time.Time) (ReportData, error) {
	var data ReportData
	var err error

	switch reportType {
	case ReportTypeEvents:
		data.Events, err = s.repo.GetUserEvents(userID, start, end)
	case ReportTypeHelpRequests:
		data.HelpRequests, err = s.repo.GetUserHelpRequests(userID, start, end)
	case ReportTypeMyActivities:
		data.Activities, err = s.repo.GetUserActivities(userID, start, end)
	default:
		return ReportData{}, fmt.Errorf("invalid report type: %s", reportType)
	}
	return data, err
}

func (s *reportService) ExportReport(reportType, format, userID string, start, end time.Time) ([]byte, string, string, error) {
	data, err := s.GetReportData(reportType, userID, start, end)
	if err != nil {
		s.logger.Warn("report data fetch failed",
			zap.String("report_type", reportType),
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, "", "", err
	}

	bytes, filename, mimeType, err := s.exporter.Export(reportType, format, data)
	if err != nil {
		s.logger.Warn("report export failed",
			zap.String("report_type", reportType),
			zap.String("format", format),
			zap.Error(err))
		return nil, "", "", err
	}

	s.logger.Info("report exported",
		zap.String("report_type", reportType),
		zap.String("format", format),
		zap.String("filename", filename))

	return bytes, filename, mimeType, nil
}
