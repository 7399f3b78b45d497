package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"riddlevault/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRiddleNotFound = errors.New("riddle not found")

	// ErrCollectionForbidden is returned when a riddle references a
	// collection that does not exist for the calling user.
	ErrCollectionForbidden = errors.New("collection does not belong to user")
)

type RiddleService struct {
	db *gorm.DB
}

func NewRiddleService(db *gorm.DB) *RiddleService {
	return &RiddleService{db: db}
}

// OptionalUUID distinguishes an absent JSON field from an explicit null.
// Updating a riddle with "collection_id": null detaches it from its
// collection, while omitting the field leaves the association untouched.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type CreateRiddleRequest struct {
	Question     string     `json:"question" binding:"required"`
	Answer       string     `json:"answer" binding:"required"`
	Hint         string     `json:"hint"`
	Category     string     `json:"category"`
	Language     string     `json:"language"`
	Difficulty   string     `json:"difficulty"`
	CollectionID *uuid.UUID `json:"collection_id"`
	IsFavorite   bool       `json:"is_favorite"`
	IsPublic     bool       `json:"is_public"`
}

type UpdateRiddleRequest struct {
	Question     *string      `json:"question"`
	Answer       *string      `json:"answer"`
	Hint         *string      `json:"hint"`
	Category     *string      `json:"category"`
	Language     *string      `json:"language"`
	Difficulty   *string      `json:"difficulty"`
	CollectionID OptionalUUID `json:"collection_id"`
	IsFavorite   *bool        `json:"is_favorite"`
	IsPublic     *bool        `json:"is_public"`
}

type ListRiddlesFilter struct {
	CollectionID  *uuid.UUID
	FavoritesOnly bool
	Difficulty    string
	Category      string
	Page          int
	PageSize      int
}

func (s *RiddleService) CreateRiddle(userID uuid.UUID, req *CreateRiddleRequest) (*models.Riddle, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", ErrValidation)
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrValidation)
	}

	// A referenced collection must exist and belong to the caller.
	if req.CollectionID != nil {
		if err := s.ownsCollection(userID, *req.CollectionID); err != nil {
			return nil, err
		}
	}

	riddle := models.Riddle{
		UserID:       userID,
		CollectionID: req.CollectionID,
		Question:     req.Question,
		Answer:       req.Answer,
		Hint:         req.Hint,
		Category:     req.Category,
		Language:     req.Language,
		Difficulty:   req.Difficulty,
		IsFavorite:   req.IsFavorite,
		IsPublic:     req.IsPublic,
	}

	if err := s.db.Create(&riddle).Error; err != nil {
		return nil, err
	}

	return &riddle, nil
}

func (s *RiddleService) GetRiddle(riddleID, userID uuid.UUID) (*models.Riddle, error) {
	var riddle models.Riddle
	err := s.db.Where("id = ? AND user_id = ?", riddleID, userID).First(&riddle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRiddleNotFound
		}
		return nil, err
	}
	return &riddle, nil
}

func (s *RiddleService) UpdateRiddle(riddleID, userID uuid.UUID, req *UpdateRiddleRequest) (*models.Riddle, error) {
	riddle, err := s.GetRiddle(riddleID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Question != nil {
		if strings.TrimSpace(*req.Question) == "" {
			return nil, fmt.Errorf("%w: question cannot be empty", ErrValidation)
		}
		updates["question"] = *req.Question
	}
	if req.Answer != nil {
		if strings.TrimSpace(*req.Answer) == "" {
			return nil, fmt.Errorf("%w: answer cannot be empty", ErrValidation)
		}
		updates["answer"] = *req.Answer
	}
	if req.Hint != nil {
		updates["hint"] = *req.Hint
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Difficulty != nil {
		if !models.ValidDifficulty(*req.Difficulty) {
			return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrValidation)
		}
		updates["difficulty"] = *req.Difficulty
	}
	if req.CollectionID.Set {
		// Explicit null detaches without further checks; a concrete id is
		// re-validated for ownership exactly as on create.
		if req.CollectionID.Value != nil {
			if err := s.ownsCollection(userID, *req.CollectionID.Value); err != nil {
				return nil, err
			}
		}
		updates["collection_id"] = req.CollectionID.Value
	}
	if req.IsFavorite != nil {
		updates["is_favorite"] = *req.IsFavorite
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := s.db.Model(riddle).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetRiddle(riddleID, userID)
}

func (s *RiddleService) DeleteRiddle(riddleID, userID uuid.UUID) error {
	riddle, err := s.GetRiddle(riddleID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(riddle).Error
}

// ListRiddles returns one page of the user's riddles matching the filter.
// Filters are conjunctive and each is applied only when provided. Rows are
// ordered by creation time (id as tiebreaker for a stable sort). The
// returned count is the number of rows in this page, not the full matching
// total; see DESIGN.md.
func (s *RiddleService) ListRiddles(userID uuid.UUID, filter *ListRiddlesFilter) ([]models.Riddle, int, error) {
	query := s.db.Where("user_id = ?", userID)
	if filter.CollectionID != nil {
		query = query.Where("collection_id = ?", *filter.CollectionID)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var riddles []models.Riddle
	err := query.Order("created_at ASC, id ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&riddles).Error
	if err != nil {
		return nil, 0, err
	}
	return riddles, len(riddles), nil
}

func (s *RiddleService) ownsCollection(userID, collectionID uuid.UUID) error {
	var count int64
	err := s.db.Model(&models.RiddleCollection{}).
		Where("id = ? AND user_id = ?", collectionID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCollectionForbidden
	}
	return nil
}
