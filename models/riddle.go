package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Riddle difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the recognized difficulty
// levels. The empty string is valid and means "not set".
func ValidDifficulty(d string) bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Riddle is a question/answer pair owned by a user. CollectionID is an
// optional reference to a RiddleCollection owned by the same user; riddles
// whose collection is deleted are detached (CollectionID set to NULL), never
// deleted with it.
type Riddle struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	CollectionID *uuid.UUID     `json:"collection_id" gorm:"type:uuid;index"`
	Question     string         `json:"question" gorm:"not null"`
	Answer       string         `json:"answer" gorm:"not null"`
	Hint         string         `json:"hint"`
	Category     string         `json:"category"`
	Language     string         `json:"language"`
	Difficulty   string         `json:"difficulty"` // easy, medium, hard or empty
	IsFavorite   bool           `json:"is_favorite" gorm:"not null;default:false"`
	IsPublic     bool           `json:"is_public" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User       User              `json:"user,omitempty"`
	Collection *RiddleCollection `json:"collection,omitempty" gorm:"foreignKey:CollectionID"`
}

func (r *Riddle) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
