package service

import (
	"context"
	"fmt"

	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MagazineService struct {
	db *gorm.DB
}

var _ IMagazineService = (*MagazineService)(nil)

func NewMagazineService(db *gorm.DB) *MagazineService {
	return &MagazineService{db: db}
}

// Two returns the newest two magazines.
func (s *MagazineService) Two(ctx context.Context) ([]types.MagazineSummary, error) {
	return s.list(ctx, 2)
}

func (s *MagazineService) ListAll(ctx context.Context) ([]types.MagazineSummary, error) {
	return s.list(ctx, -1)
}

func (s *MagazineService) Detail(ctx context.Context, userID, magazineID uuid.UUID) (*types.MagazineDetail, error) {
	var magazine models.Magazine
	err := s.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&magazine, "id = ?", magazineID).Error
	if err != nil {
		return nil, notFoundOr(err, "magazine not found", "load magazine")
	}
	marked, err := bookmarkedSet(ctx, s.db, userID, models.ContentTypeMagazine, []uuid.UUID{magazineID})
	if err != nil {
		return nil, err
	}
	return &types.MagazineDetail{Magazine: magazine, IsBookmarked: marked[magazineID]}, nil
}

func (s *MagazineService) list(ctx context.Context, limit int) ([]types.MagazineSummary, error) {
	var magazines []models.Magazine
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&magazines).Error; err != nil {
		return nil, fmt.Errorf("failed to list magazines: %w", err)
	}
	out := make([]types.MagazineSummary, len(magazines))
	for i, m := range magazines {
		out[i] = types.MagazineSummary{ID: m.ID, Title: m.Title, Editor: m.Editor, Thumbnail: m.Thumbnail, CreatedAt: m.CreatedAt}
	}
	return out, nil
}
