package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository defines the database operations the reports service needs.
type ReportRepository interface {
	GetUserEvents(userID string, start, end time.Time) ([]EventReportRow, error)
	GetUserHelpRequests(userID string, start, end time.Time) ([]HelpRequestReportRow, error)
	GetUserActivities(userID string, start, end time.Time) ([]ActivityReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &repository{db: db}
}

// ===========================
// The requester's events with active registration counts
func (r *repository) GetUserEvents(userID string, start, end time.Time) ([]EventReportRow, error) {
	var rows []EventReportRow
	err := r.db.Table("events").
		Select(`events.id, events.title,
			COALESCE(events.category, '') AS category,
			COALESCE(events.location, '') AS location,
			events.start_date, events.is_ongoing, events.created_at,
			(SELECT COUNT(*) FROM participants
				WHERE participants.event_id = events.id
				AND participants.status = 'registered') AS participant_count`).
		Where("events.creator_id = ? AND events.created_at BETWEEN ? AND ?", userID, start, end).
		Order("events.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// The requester's help requests with helper counts
func (r *repository) GetUserHelpRequests(userID string, start, end time.Time) ([]HelpRequestReportRow, error) {
	var rows []HelpRequestReportRow
	err := r.db.Table("help_requests").
		Select(`help_requests.id, help_requests.title, help_requests.urgency,
			help_requests.status, help_requests.created_at,
			(SELECT COUNT(*) FROM helpers
				WHERE helpers.help_request_id = help_requests.id) AS helper_count`).
		Where("help_requests.creator_id = ? AND help_requests.created_at BETWEEN ? AND ?", userID, start, end).
		Order("help_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// The requester's volunteer activity history
func (r *repository) GetUserActivities(userID string, start, end time.Time) ([]ActivityReportRow, error) {
	var rows []ActivityReportRow
	err := r.db.Table("volunteer_activities").
		Select("type, resource_type, resource_title, created_at").
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at DESC").
		Scan(&rows).Error
	return rows, err
}
