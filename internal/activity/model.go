package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================
// Volunteer Activity Model
type Activity struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Type          string    `gorm:"type:varchar(100);not null" json:"type"`
	ResourceType  string    `gorm:"type:varchar(50)" json:"resource_type"`
	ResourceID    string    `gorm:"type:uuid" json:"resource_id"`
	ResourceTitle string    `gorm:"type:varchar(255)" json:"resource_title"`
	IPAddress     string    `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Activity) TableName() string { return "volunteer_activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Activity types recorded on the ledger.
const (
	TypeEventRegistered = "EVENT_REGISTERED"
	TypeEventCanceled   = "EVENT_CANCELED"
	TypeHelpOffered     = "HELP_OFFERED"
	TypeCommentAdded    = "COMMENT_ADDED"
)

// RecordInput is one ledger entry plus the routing hints the stream
// consumer needs to notify the resource owner.
type RecordInput struct {
	UserID        string `json:"user_id"`
	ActorName     string `json:"actor_name"`
	Type          string `json:"type"`
	ResourceType  string `json:"resource_type"`
	ResourceID    string `json:"resource_id"`
	ResourceTitle string `json:"resource_title"`
	TargetUserID  string `json:"target_user_id"`
	IPAddress     string `json:"-"`
}
