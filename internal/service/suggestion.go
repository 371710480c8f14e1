package service

import (
	"context"
	"fmt"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionService collects user proposals for new or corrected
// restaurants.
type SuggestionService struct {
	db *gorm.DB
}

var _ ISuggestionService = (*SuggestionService)(nil)

func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{db: db}
}

func (s *SuggestionService) Create(ctx context.Context, userID uuid.UUID, req types.SuggestionRequest) (*models.Suggestion, error) {
	suggestion := models.Suggestion{
		UserID:     userID,
		Kind:       req.Kind,
		Inspection: models.InspectionIncomplete,
		Detail:     models.SuggestionDetail{Registration: req.Registration, Modification: req.Modification},
	}
	if err := suggestion.Validate(); err != nil {
		return nil, apperr.InvalidInputf(err, "%s", err.Error())
	}
	if _, err := findActiveUser(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if mod := req.Modification; mod != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", mod.RestaurantID).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to load restaurant: %w", err)
		}
		if n == 0 {
			return nil, apperr.NotFound("restaurant not found")
		}
	}

	if err := s.db.WithContext(ctx).Create(&suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to save suggestion: %w", err)
	}
	return &suggestion, nil
}

func (s *SuggestionService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

func (s *SuggestionService) Inspect(ctx context.Context, adminID, suggestionID uuid.UUID, inspection models.Inspection) (*models.Suggestion, error) {
	if inspection != models.InspectionIncomplete && inspection != models.InspectionComplete {
		return nil, apperr.InvalidInput("suggestions are either INCOMPLETE or COMPLETE")
	}
	admin, err := findActiveUser(ctx, s.db, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperr.Forbidden("admin role required")
	}

	var suggestion models.Suggestion
	if err := s.db.WithContext(ctx).First(&suggestion, "id = ?", suggestionID).Error; err != nil {
		return nil, notFoundOr(err, "suggestion not found", "load suggestion")
	}
	if err := s.db.WithContext(ctx).Model(&suggestion).Update("inspection", inspection).Error; err != nil {
		return nil, fmt.Errorf("failed to update suggestion: %w", err)
	}
	suggestion.Inspection = inspection
	return &suggestion, nil
}
