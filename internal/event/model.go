package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================
// Event Model
type Event struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   string     `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    *string    `gorm:"type:varchar(100)" json:"category"`
	Location    *string    `gorm:"type:text" json:"location"`
	StartDate   *time.Time `gorm:"index" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsOngoing   bool       `gorm:"default:false" json:"is_ongoing"`
	Capacity    *int       `json:"capacity"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Creator          *CreatorInfo      `gorm:"-" json:"creator,omitempty"`
	ParticipantCount int               `gorm:"-" json:"participant_count"`
	Participants     []ParticipantInfo `gorm:"-" json:"participants,omitempty"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// CreatorInfo is the minimal public identity attached to listings.
type CreatorInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// ParticipantInfo is one active registration with its profile attached.
type ParticipantInfo struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ============================
// Create Event Request
type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	StartDate   string  `json:"start_date"` // RFC3339 or "2006-01-02"
	EndDate     string  `json:"end_date"`
	IsOngoing   *bool   `json:"is_ongoing"`
	Capacity    *int    `json:"capacity"`
}

// ============================
// Update Event Request (partial, nil means leave unchanged)
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsOngoing   *bool   `json:"is_ongoing"`
	Capacity    *int    `json:"capacity"`
}

// ListFilters narrows the public event listing.
type ListFilters struct {
	Category      string
	Location      string
	Ongoing       *bool
	StartDateFrom *time.Time
	Limit         int
	Offset        int
}
