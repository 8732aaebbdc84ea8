package activity

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
// Create Activity Entry
func (r *Repository) Create(a *Activity) error {
	return r.DB.Create(a).Error
}

// ===========================
// List Activities for a User (newest first)
func (r *Repository) ListByUser(userID string, limit, offset int) ([]Activity, error) {
	var activities []Activity
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	return activities, err
}

// ===========================
// Count Activities for a User
func (r *Repository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&Activity{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
