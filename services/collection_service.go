package services

import (
	"errors"
	"fmt"
	"strings"

	"riddlevault/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrValidation marks rejected input; handlers map it to 400.
	ErrValidation = errors.New("validation failed")
)

type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsDefault   bool   `json:"is_default"`
}

type UpdateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsDefault   *bool   `json:"is_default"`
}

func (s *CollectionService) CreateCollection(userID uuid.UUID, req *CreateCollectionRequest) (*models.RiddleCollection, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	// Single-default invariant: clear any existing default before inserting
	// a new one. Two independent statements, not a transaction; a concurrent
	// request can briefly observe zero defaults.
	if req.IsDefault {
		if err := s.clearDefaults(userID); err != nil {
			return nil, err
		}
	}

	collection := models.RiddleCollection{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsDefault:   req.IsDefault,
	}

	if err := s.db.Create(&collection).Error; err != nil {
		return nil, err
	}

	return &collection, nil
}

func (s *CollectionService) GetCollection(collectionID, userID uuid.UUID) (*models.RiddleCollection, error) {
	var collection models.RiddleCollection
	err := s.db.Where("id = ? AND user_id = ?", collectionID, userID).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (s *CollectionService) UpdateCollection(collectionID, userID uuid.UUID, req *UpdateCollectionRequest) (*models.RiddleCollection, error) {
	collection, err := s.GetCollection(collectionID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.IsDefault != nil {
		// Setting the default clears every default for this user first, the
		// target included; the partial update then re-sets the target, so
		// exactly one collection ends up default.
		if *req.IsDefault {
			if err := s.clearDefaults(userID); err != nil {
				return nil, err
			}
		}
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) > 0 {
		if err := s.db.Model(collection).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetCollection(collectionID, userID)
}

func (s *CollectionService) DeleteCollection(collectionID, userID uuid.UUID) error {
	collection, err := s.GetCollection(collectionID, userID)
	if err != nil {
		return err
	}

	// Detach riddles first so none is left pointing at a missing collection.
	// Both steps are idempotent: re-running after a crash between them is
	// safe. Riddles are never cascade-deleted.
	err = s.db.Model(&models.Riddle{}).
		Where("user_id = ? AND collection_id = ?", userID, collectionID).
		Update("collection_id", nil).Error
	if err != nil {
		return err
	}

	return s.db.Delete(collection).Error
}

// ListCollections returns one page of the user's collections ordered by
// creation time (id as tiebreaker for a stable sort). The returned count is
// the number of rows in this page, not the full matching total; see
// DESIGN.md.
func (s *CollectionService) ListCollections(userID uuid.UUID, page, pageSize int) ([]models.RiddleCollection, int, error) {
	var collections []models.RiddleCollection
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&collections).Error
	if err != nil {
		return nil, 0, err
	}
	return collections, len(collections), nil
}

func (s *CollectionService) clearDefaults(userID uuid.UUID) error {
	return s.db.Model(&models.RiddleCollection{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
