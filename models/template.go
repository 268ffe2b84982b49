package models

import (
	"time"

	"gorm.io/gorm"
)

// TemplateSelection records the template a user picked for a campaign or
// workflow, together with the customization payload the renderer consumes.
type TemplateSelection struct {
	gorm.Model
	UserID     uint   `gorm:"index" json:"user_id"`
	CampaignID *uint  `gorm:"index" json:"campaign_id,omitempty"`
	WorkflowID string `gorm:"index" json:"workflow_id,omitempty"`

	TemplateID   string `gorm:"not null" json:"template_id"`
	IsCustomized bool   `gorm:"default:false" json:"is_customized"`

	// Customization payload stored as JSON (flat fields, nested customizations,
	// custom media and custom components)
	Customizations map[string]interface{}   `gorm:"type:jsonb;serializer:json" json:"customizations,omitempty"`
	Components     []map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"components,omitempty"`
}

// GeneratedEmail logs one generated (and possibly sent) email per prospect
// per campaign run. Rows are written once and never mutated afterwards.
type GeneratedEmail struct {
	gorm.Model
	CampaignID uint `gorm:"not null;index" json:"campaign_id"`
	ProspectID uint `gorm:"index" json:"prospect_id"`

	RecipientEmail string `gorm:"not null;index" json:"recipient_email"`
	Subject        string `json:"subject"`
	Body           string `gorm:"type:text" json:"body"`
	HTML           string `gorm:"type:text" json:"html"`

	// ai_personalized, user_template or fallback
	TemplateUsed string `json:"template_used"`
	TemplateID   string `json:"template_id"`
	SenderName   string `json:"sender_name"`

	MessageID string     `gorm:"index" json:"message_id"`
	SentAt    *time.Time `json:"sent_at"`
	SendError string     `json:"send_error,omitempty"`

	OpenedAt  *time.Time `json:"opened_at,omitempty"`
	ClickedAt *time.Time `json:"clicked_at,omitempty"`
}
