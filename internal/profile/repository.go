package profile

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
// Get Profile By User ID
func (r *Repository) GetByUserID(userID string) (*Profile, error) {
	var p Profile
	if err := r.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// Get Profiles for a set of users (bulk enrichment)
func (r *Repository) GetByUserIDs(userIDs []string) (map[string]*Profile, error) {
	out := make(map[string]*Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var profiles []Profile
	if err := r.DB.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		out[profiles[i].UserID] = &profiles[i]
	}
	return out, nil
}

// ===========================
// Upsert Profile keyed by user_id
func (r *Repository) Upsert(p *Profile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "full_name", "bio", "skills", "causes", "updated_at",
		}),
	}).Create(p).Error
}

// ===========================
// Create Profile (first materialization only, keeps existing row on conflict)
func (r *Repository) CreateIfAbsent(p *Profile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(p).Error
}
