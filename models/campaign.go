package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign represents an outreach campaign driven by the generation worker
type Campaign struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	// Campaign details
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Goal        string `gorm:"default:'partnership'" json:"goal"` // partnership, sales, product_launch, event

	// Template selection: an explicit template id pins every prospect to it;
	// otherwise the rotator picks one per prospect, optionally within a category.
	TemplateID       string `json:"template_id"`
	TemplateCategory string `json:"template_category"`
	RotationEnabled  bool   `gorm:"default:true" json:"rotation_enabled"`

	// Sender / business context used by the generator
	SenderName     string `json:"sender_name"`
	SenderEmail    string `json:"sender_email"`
	CompanyName    string `json:"company_name"`
	CompanyWebsite string `json:"company_website"`
	Industry       string `json:"industry"`
	Product        string `json:"product"`

	// Scheduling
	Status      string     `gorm:"default:'draft'" json:"status"` // draft, sending, completed, paused
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Tracking settings
	TrackOpens  bool `gorm:"default:true" json:"track_opens"`
	TrackClicks bool `gorm:"default:true" json:"track_clicks"`

	// Statistics (denormalized for performance)
	TotalRecipients int `gorm:"default:0" json:"total_recipients"`
	SentCount       int `gorm:"default:0" json:"sent_count"`
	GeneratedCount  int `gorm:"default:0" json:"generated_count"`
	FallbackCount   int `gorm:"default:0" json:"fallback_count"`
	FailedCount     int `gorm:"default:0" json:"failed_count"`

	// Relations
	ProspectLists []CampaignProspectList `gorm:"foreignKey:CampaignID" json:"prospect_lists,omitempty"`
	Selection     *TemplateSelection     `gorm:"foreignKey:CampaignID" json:"selection,omitempty"`
	Emails        []GeneratedEmail       `gorm:"foreignKey:CampaignID" json:"emails,omitempty"`
}

// CampaignProspectList joins campaigns to prospect lists
type CampaignProspectList struct {
	gorm.Model
	CampaignID     uint `gorm:"not null;index" json:"campaign_id"`
	ProspectListID uint `gorm:"not null;index" json:"prospect_list_id"`
}
