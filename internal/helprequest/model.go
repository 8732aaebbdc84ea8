package helprequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Urgency levels and request states.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// ============================
// HelpRequest Model
type HelpRequest struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   string    `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    *string   `gorm:"type:varchar(100)" json:"category"`
	Location    *string   `gorm:"type:text" json:"location"`
	Urgency     string    `gorm:"type:varchar(20);not null;default:'medium'" json:"urgency"`
	Status      string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Creator     *PersonInfo `gorm:"-" json:"creator,omitempty"`
	HelperCount int         `gorm:"-" json:"helper_count"`
}

func (HelpRequest) TableName() string { return "help_requests" }

func (h *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// ============================
// Helper Model - idempotent membership, one row per (request, user)
type Helper struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	HelpRequestID string    `gorm:"type:uuid;not null;uniqueIndex:idx_request_user" json:"help_request_id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_request_user" json:"user_id"`
	Message       string    `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Profile *PersonInfo `gorm:"-" json:"profile,omitempty"`
}

func (Helper) TableName() string { return "helpers" }

func (h *Helper) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// ============================
// Comment Model - append-only
type Comment struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	HelpRequestID string    `gorm:"type:uuid;not null;index" json:"help_request_id"`
	UserID        string    `gorm:"type:uuid;not null" json:"user_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Profile *PersonInfo `gorm:"-" json:"profile,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// PersonInfo is the minimal public identity attached to rows.
type PersonInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// ============================
// Create Help Request
type CreateHelpRequestRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Urgency     string  `json:"urgency"`
}

// ============================
// Update Help Request (partial, nil means leave unchanged)
type UpdateHelpRequestRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Urgency     *string `json:"urgency"`
	Status      *string `json:"status"`
}

// ============================
// Offer Help Request body
type OfferHelpRequest struct {
	Message string `json:"message"`
}

// ============================
// Add Comment Request body
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListFilters narrows the public help-request listing.
type ListFilters struct {
	Urgency  string
	Category string
	Status   string
	Limit    int
	Offset   int
}
