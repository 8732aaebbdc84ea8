package participation

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// Get the ledger row for (event, user), canceled rows included
func (r *Repository) GetByEventAndUser(eventID, userID string) (*Participant, error) {
	var p Participant
	err := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// Register upserts onto the unique (event_id, user_id) pair so
// concurrent registers collapse onto one row
func (r *Repository) Register(eventID, userID string) error {
	p := &Participant{
		EventID: eventID,
		UserID:  userID,
		Status:  StatusRegistered,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     StatusRegistered,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(p).Error
}

// ===========================
// Flip the ledger row's status, reporting rows matched
func (r *Repository) UpdateStatus(eventID, userID, status string) (int64, error) {
	res := r.DB.Model(&Participant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// ===========================
// Look up the event being registered for
func (r *Repository) GetEventSummary(eventID string) (*eventSummary, error) {
	var e eventSummary
	err := r.DB.Table("events").
		Select("id, title, creator_id").
		Where("id = ?", eventID).
		Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// A user's events, joined with event and creator info
func (r *Repository) ListUserEvents(userID, statusFilter string) ([]UserEventEntry, error) {
	query := r.DB.Table("participants").
		Select(`events.id AS event_id, events.title, events.description, events.category,
			events.location, events.start_date, events.is_ongoing,
			participants.status AS registration_status, participants.created_at AS registered_at,
			profiles.username AS creator_username`).
		Joins("JOIN events ON events.id = participants.event_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = events.creator_id").
		Where("participants.user_id = ?", userID)

	if statusFilter != "" {
		query = query.Where("participants.status = ?", statusFilter)
	}

	var entries []UserEventEntry
	err := query.Order("events.start_date ASC").Scan(&entries).Error
	return entries, err
}
