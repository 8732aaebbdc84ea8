package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================
// Profile Model
type Profile struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Username  string         `gorm:"type:varchar(100)" json:"username"`
	FullName  string         `gorm:"type:varchar(255)" json:"full_name"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Skills    datatypes.JSON `json:"skills"`
	Causes    datatypes.JSON `json:"causes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ============================
// Update Profile Request
type UpdateProfileRequest struct {
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Causes   []string `json:"causes"`
}

// IdentityHints carries what the session token knows about a user so a
// profile can be synthesized the first time one is needed.
type IdentityHints struct {
	Email    string
	FullName string
	Username string
}
