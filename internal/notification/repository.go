package notification

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
// Create In-App Notification
func (r *Repository) Create(n *InAppNotification) error {
	return r.DB.Create(n).Error
}

// ===========================
// List a user's notifications (newest first)
func (r *Repository) ListByUser(userID string, limit int) ([]InAppNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var items []InAppNotification
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ===========================
// Mark one notification read, scoped to its owner
func (r *Repository) MarkRead(id, userID string) (int64, error) {
	res := r.DB.Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// ===========================
// Unread count for the bell badge
func (r *Repository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
