package participation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration states. A canceled row is kept so reactivation reuses it.
const (
	StatusRegistered = "registered"
	StatusCanceled   = "canceled"
)

// ============================
// Participant Model - one row per (event, user), ever
type Participant struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"user_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Participant) TableName() string { return "participants" }

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// UserEventEntry is one row of a user's "my events" listing.
type UserEventEntry struct {
	EventID            string     `json:"event_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           *string    `json:"category"`
	Location           *string    `json:"location"`
	StartDate          *time.Time `json:"start_date"`
	IsOngoing          bool       `json:"is_ongoing"`
	RegistrationStatus string     `json:"registration_status"`
	RegisteredAt       time.Time  `json:"registered_at"`
	CreatorUsername    string     `json:"creator_username"`
}

// eventSummary is what the register path needs to know about the event.
type eventSummary struct {
	ID        string
	Title     string
	CreatorID string
}
