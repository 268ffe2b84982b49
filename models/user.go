package models

import (
	"gorm.io/gorm"
)

// User represents an account that owns campaigns and prospect lists
type User struct {
	gorm.Model

	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Name         *string `json:"name,omitempty"`

	IsActive     bool `gorm:"default:true" json:"is_active"`
	TokenVersion int  `gorm:"default:0" json:"-"`

	// Relations
	Campaigns     []Campaign     `gorm:"foreignKey:UserID" json:"campaigns,omitempty"`
	ProspectLists []ProspectList `gorm:"foreignKey:UserID" json:"prospect_lists,omitempty"`
}
