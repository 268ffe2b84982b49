package models

import (
	"time"

	"gorm.io/gorm"
)

// ProspectList represents a list of prospects/contacts
type ProspectList struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"` // manual, csv, api, etc.

	// Statistics
	ProspectCount int `gorm:"default:0" json:"prospect_count"`

	// Relations
	Prospects []Prospect `gorm:"foreignKey:ProspectListID" json:"prospects,omitempty"`
}

// TemplateDataOverride carries per-prospect sender/company overrides that take
// precedence over the campaign's business context during generation.
type TemplateDataOverride struct {
	SenderName     string `json:"senderName,omitempty"`
	SenderEmail    string `json:"senderEmail,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
	CTAText        string `json:"ctaText,omitempty"`
	CTAURL         string `json:"ctaUrl,omitempty"`
}

// Prospect represents a single contact targeted by a campaign
type Prospect struct {
	gorm.Model
	ProspectListID uint `gorm:"not null;index" json:"prospect_list_id"`
	UserID         uint `gorm:"index" json:"user_id"`

	Email   string `gorm:"not null;index" json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Website string `json:"website"`

	// Optional explicit template preference; empty means the rotator decides
	PreferredTemplate string `json:"preferred_template"`

	// Per-prospect sender/company overrides
	TemplateData *TemplateDataOverride `gorm:"type:jsonb;serializer:json" json:"template_data,omitempty"`

	// Status
	IsBounced      bool `gorm:"default:false" json:"is_bounced"`
	IsUnsubscribed bool `gorm:"default:false" json:"is_unsubscribed"`

	// Metadata
	Source      string     `json:"source"`
	LastContact *time.Time `json:"last_contact"`

	// Relations
	ProspectList ProspectList `gorm:"foreignKey:ProspectListID" json:"-"`
}
