package service

import (
	"context"
	"fmt"

	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const randomFoodCount = 3

// FoodService serves the recipe catalogue.
type FoodService struct {
	db       *gorm.DB
	pageSize int
}

var _ IFoodService = (*FoodService)(nil)

func NewFoodService(db *gorm.DB, pageSize int) *FoodService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &FoodService{db: db, pageSize: pageSize}
}

// ListAll returns every recipe with its ingredients.
func (s *FoodService) ListAll(ctx context.Context) ([]types.FoodSummary, error) {
	var foods []models.Food
	if err := s.db.WithContext(ctx).Preload("Ingredients").Order("name").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return toFoodSummaries(foods), nil
}

// Detail returns one recipe with its steps in order. userID may be uuid.Nil.
func (s *FoodService) Detail(ctx context.Context, userID, foodID uuid.UUID) (*types.FoodDetail, error) {
	var food models.Food
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Blocks", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&food, "id = ?", foodID).Error
	if err != nil {
		return nil, notFoundOr(err, "recipe not found", "load recipe")
	}
	marked, err := bookmarkedSet(ctx, s.db, userID, models.ContentTypeRecipe, []uuid.UUID{foodID})
	if err != nil {
		return nil, err
	}
	return &types.FoodDetail{Food: food, IsBookmarked: marked[foodID]}, nil
}

func (s *FoodService) RandomThree(ctx context.Context) ([]types.FoodSummary, error) {
	var foods []models.Food
	if err := s.db.WithContext(ctx).Preload("Ingredients").Order("RANDOM()").Limit(randomFoodCount).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to load random foods: %w", err)
	}
	return toFoodSummaries(foods), nil
}

func (s *FoodService) Page(ctx context.Context, page int) (types.Page[types.FoodSummary], error) {
	return s.page(ctx, s.db.WithContext(ctx), page)
}

// Mine pages the recipes matching the user's vegan type.
func (s *FoodService) Mine(ctx context.Context, userID uuid.UUID, page int) (types.Page[types.FoodSummary], error) {
	user, err := findActiveUser(ctx, s.db, userID)
	if err != nil {
		return types.Page[types.FoodSummary]{}, err
	}
	return s.page(ctx, s.db.WithContext(ctx).Where("vegan_type = ?", user.VeganType), page)
}

func (s *FoodService) page(ctx context.Context, q *gorm.DB, page int) (types.Page[types.FoodSummary], error) {
	page, size := normalizePage(page, s.pageSize)
	var foods []models.Food
	if err := q.Preload("Ingredients").Order("name").Order("id").Offset(page * size).Limit(size + 1).Find(&foods).Error; err != nil {
		return types.Page[types.FoodSummary]{}, fmt.Errorf("failed to list foods: %w", err)
	}
	p := buildPage(foods, page, size)
	return types.Page[types.FoodSummary]{Items: toFoodSummaries(p.Items), Page: p.Page, HasNext: p.HasNext}, nil
}

func toFoodSummaries(foods []models.Food) []types.FoodSummary {
	out := make([]types.FoodSummary, len(foods))
	for i, f := range foods {
		out[i] = types.FoodSummary{
			ID:          f.ID,
			Name:        f.Name,
			VeganType:   f.VeganType,
			Thumbnail:   f.Thumbnail,
			CookingTime: f.CookingTime,
			Ingredients: f.Ingredients,
		}
	}
	return out
}
