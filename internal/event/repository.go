package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// Create Event
func (r *Repository) Create(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// Get Event By ID
func (r *Repository) GetByID(id string) (*Event, error) {
	var e Event
	if err := r.DB.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// List Events with filters, soonest first
func (r *Repository) List(f ListFilters) ([]Event, error) {
	query := r.DB.Model(&Event{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+f.Location+"%")
	}
	if f.Ongoing != nil {
		query = query.Where("is_ongoing = ?", *f.Ongoing)
	}
	if f.StartDateFrom != nil {
		query = query.Where("start_date >= ?", *f.StartDateFrom)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var events []Event
	err := query.Order("start_date ASC").Find(&events).Error
	return events, err
}

// ===========================
// Update Event fields, reporting how many rows matched
func (r *Repository) Update(id string, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&Event{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// ===========================
// Delete Event and its participation rows
func (r *Repository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM participants WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Event{}).Error
	})
}

// ===========================
// Count active registrations for an event
func (r *Repository) CountParticipants(eventID string) (int, error) {
	var count int64
	err := r.DB.Table("participants").
		Where("event_id = ? AND status = ?", eventID, "registered").
		Count(&count).Error
	return int(count), err
}

// ===========================
// Active registrations with profiles attached
func (r *Repository) GetParticipants(eventID string) ([]ParticipantInfo, error) {
	var out []ParticipantInfo
	err := r.DB.Table("participants").
		Select("participants.user_id, participants.status, participants.created_at AS registered_at, profiles.username, profiles.full_name").
		Joins("LEFT JOIN profiles ON profiles.user_id = participants.user_id").
		Where("participants.event_id = ? AND participants.status = ?", eventID, "registered").
		Order("participants.created_at ASC").
		Scan(&out).Error
	return out, err
}

// ===========================
// Minimal creator identities for a set of users
func (r *Repository) GetCreatorProfiles(userIDs []string) (map[string]CreatorInfo, error) {
	out := make(map[string]CreatorInfo, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []CreatorInfo
	err := r.DB.Table("profiles").
		Select("user_id, username, full_name").
		Where("user_id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.UserID] = row
	}
	return out, nil
}
