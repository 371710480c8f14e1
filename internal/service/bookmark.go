package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkService struct {
	db *gorm.DB
}

var _ IBookmarkService = (*BookmarkService)(nil)

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// Create bookmarks an existing restaurant, recipe or magazine.
func (s *BookmarkService) Create(ctx context.Context, userID uuid.UUID, req types.BookmarkRequest) error {
	if !req.ContentType.Valid() {
		return apperr.InvalidInput("unknown content type")
	}
	if err := s.contentExists(ctx, req.ContentID, req.ContentType); err != nil {
		return err
	}

	bookmark := models.Bookmark{UserID: userID, ContentID: req.ContentID, ContentType: req.ContentType}
	err := s.db.WithContext(ctx).Create(&bookmark).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("already bookmarked")
	}
	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID uuid.UUID, req types.BookmarkRequest) error {
	if !req.ContentType.Valid() {
		return apperr.InvalidInput("unknown content type")
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ? AND content_type = ?", userID, req.ContentID, req.ContentType).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("bookmark not found")
	}
	return nil
}

func (s *BookmarkService) ListRestaurants(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error) {
	marks, err := s.list(ctx, userID, models.ContentTypeRestaurant)
	if err != nil {
		return nil, err
	}
	var rows []models.Restaurant
	if err := s.db.WithContext(ctx).Where("id IN ?", contentIDs(marks)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	byID := make(map[uuid.UUID]models.Restaurant, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	return joinBookmarks(marks, func(id uuid.UUID) (types.BookmarkItem, bool) {
		r, ok := byID[id]
		return types.BookmarkItem{Title: r.Name, Thumbnail: r.Thumbnail, Subtitle: r.Address.String()}, ok
	}), nil
}

func (s *BookmarkService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error) {
	marks, err := s.list(ctx, userID, models.ContentTypeRecipe)
	if err != nil {
		return nil, err
	}
	var rows []models.Food
	if err := s.db.WithContext(ctx).Where("id IN ?", contentIDs(marks)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	byID := make(map[uuid.UUID]models.Food, len(rows))
	for _, f := range rows {
		byID[f.ID] = f
	}
	return joinBookmarks(marks, func(id uuid.UUID) (types.BookmarkItem, bool) {
		f, ok := byID[id]
		return types.BookmarkItem{Title: f.Name, Thumbnail: f.Thumbnail, Subtitle: string(f.VeganType)}, ok
	}), nil
}

func (s *BookmarkService) ListMagazines(ctx context.Context, userID uuid.UUID) ([]types.BookmarkItem, error) {
	marks, err := s.list(ctx, userID, models.ContentTypeMagazine)
	if err != nil {
		return nil, err
	}
	var rows []models.Magazine
	if err := s.db.WithContext(ctx).Where("id IN ?", contentIDs(marks)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load magazines: %w", err)
	}
	byID := make(map[uuid.UUID]models.Magazine, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	return joinBookmarks(marks, func(id uuid.UUID) (types.BookmarkItem, bool) {
		m, ok := byID[id]
		return types.BookmarkItem{Title: m.Title, Thumbnail: m.Thumbnail, Subtitle: m.Editor}, ok
	}), nil
}

func (s *BookmarkService) list(ctx context.Context, userID uuid.UUID, contentType models.ContentType) ([]models.Bookmark, error) {
	var marks []models.Bookmark
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ?", userID, contentType).
		Order("created_at DESC").
		Find(&marks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return marks, nil
}

func (s *BookmarkService) contentExists(ctx context.Context, id uuid.UUID, contentType models.ContentType) error {
	var model any
	switch contentType {
	case models.ContentTypeRestaurant:
		model = &models.Restaurant{}
	case models.ContentTypeRecipe:
		model = &models.Food{}
	default:
		model = &models.Magazine{}
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up content: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("content not found")
	}
	return nil
}

func contentIDs(marks []models.Bookmark) []uuid.UUID {
	ids := make([]uuid.UUID, len(marks))
	for i, m := range marks {
		ids[i] = m.ContentID
	}
	return ids
}

// joinBookmarks keeps bookmark order and drops entries whose content is gone.
func joinBookmarks(marks []models.Bookmark, lookup func(uuid.UUID) (types.BookmarkItem, bool)) []types.BookmarkItem {
	items := make([]types.BookmarkItem, 0, len(marks))
	for _, m := range marks {
		item, ok := lookup(m.ContentID)
		if !ok {
			continue
		}
		item.BookmarkID = m.ID
		item.ContentID = m.ContentID
		item.ContentType = m.ContentType
		item.CreatedAt = m.CreatedAt
		items = append(items, item)
	}
	return items
}
