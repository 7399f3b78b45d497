package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RiddleCollection is a named, user-owned grouping of riddles.
// At most one collection per user has IsDefault set.
type RiddleCollection struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	IsDefault   bool           `json:"is_default" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User    User     `json:"user,omitempty"`
	Riddles []Riddle `json:"riddles,omitempty" gorm:"foreignKey:CollectionID"`
}

func (c *RiddleCollection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
