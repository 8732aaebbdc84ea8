package helprequest

import (
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
// Create Help Request
func (r *Repository) Create(h *HelpRequest) error {
	return r.DB.Create(h).Error
}

// ===========================
// Get Help Request By ID
func (r *Repository) GetByID(id string) (*HelpRequest, error) {
	var h HelpRequest
	if err := r.DB.Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// ===========================
// List Help Requests, newest first
func (r *Repository) List(f ListFilters) ([]HelpRequest, error) {
	query := r.DB.Model(&HelpRequest{})

	if f.Urgency != "" {
		query = query.Where("urgency = ?", f.Urgency)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var requests []HelpRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ===========================
// Update Help Request fields, reporting rows matched
func (r *Repository) Update(id string, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&HelpRequest{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// ===========================
// Flip an open request to in_progress; the guard on status means
// in_progress and resolved are never reverted
func (r *Repository) MarkInProgress(id string) (int64, error) {
	res := r.DB.Model(&HelpRequest{}).
		Where("id = ? AND status = ?", id, StatusOpen).
		Update("status", StatusInProgress)
	return res.RowsAffected, res.Error
}

// ===========================
// Delete Help Request with its helpers and comments
func (r *Repository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("help_request_id = ?", id).Delete(&Helper{}).Error; err != nil {
			return err
		}
		if err := tx.Where("help_request_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&HelpRequest{}).Error
	})
}

// ===========================
// Get a helper row for (request, user)
func (r *Repository) GetHelper(requestID, userID string) (*Helper, error) {
	var h Helper
	err := r.DB.Where("help_request_id = ? AND user_id = ?", requestID, userID).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ===========================
// Add a helper; the conflict clause keeps the first row on a race
func (r *Repository) AddHelper(h *Helper) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "help_request_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(h).Error
}

// ===========================
// Helpers for a request, newest first, profiles attached
func (r *Repository) ListHelpers(requestID string) ([]Helper, error) {
	var helpers []Helper
	err := r.DB.
		Where("help_request_id = ?", requestID).
		Order("created_at DESC").
		Find(&helpers).Error
	return helpers, err
}

// ===========================
// Helper counts for a batch of requests
func (r *Repository) CountHelpers(requestID string) (int, error) {
	var count int64
	err := r.DB.Model(&Helper{}).
		Where("help_request_id = ?", requestID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// Append a comment
func (r *Repository) AddComment(c *Comment) error {
	return r.DB.Create(c).Error
}

// ===========================
// Comments for a request, newest first
func (r *Repository) ListComments(requestID string) ([]Comment, error) {
	var comments []Comment
	err := r.DB.
		Where("help_request_id = ?", requestID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ===========================
// Minimal identities for a set of users
func (r *Repository) GetPersonInfo(userIDs []string) (map[string]PersonInfo, error) {
	out := make(map[string]PersonInfo, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []PersonInfo
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
