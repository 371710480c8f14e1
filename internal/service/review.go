package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService manages reviews, their photos, recommendations, reports and
// moderation.
type ReviewService struct {
	db       *gorm.DB
	images   ImageStore
	pageSize int
}

var _ IReviewService = (*ReviewService)(nil)

func NewReviewService(db *gorm.DB, images ImageStore, pageSize int) *ReviewService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ReviewService{db: db, images: images, pageSize: pageSize}
}

func (s *ReviewService) GetRestaurantSummary(ctx context.Context, restaurantID uuid.UUID) (*types.RestaurantBrief, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, "id = ?", restaurantID).Error; err != nil {
		return nil, notFoundOr(err, "restaurant not found", "load restaurant")
	}
	return &types.RestaurantBrief{
		ID:             r.ID,
		Name:           r.Name,
		RestaurantType: r.RestaurantType,
		Address:        r.Address,
		Thumbnail:      r.Thumbnail,
	}, nil
}

func (s *ReviewService) Get(ctx context.Context, reviewID uuid.UUID) (*types.ReviewItem, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Preload("Images").Preload("User").Preload("Restaurant").
		First(&review, "id = ?", reviewID).Error
	if err != nil {
		return nil, notFoundOr(err, "review not found", "load review")
	}
	items, err := toReviewItems(ctx, s.db, []models.Review{review})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create stores a review. Photos make it a PHOTO review awaiting inspection.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req types.ReviewRequest, files []*multipart.FileHeader) (*types.ReviewItem, error) {
	if err := validateReview(req, files); err != nil {
		return nil, err
	}
	restaurantID, err := uuid.Parse(strings.TrimSpace(req.RestaurantID))
	if err != nil {
		return nil, apperr.InvalidInputf(err, "invalid restaurant id")
	}
	if _, err := findActiveUser(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if _, err := s.GetRestaurantSummary(ctx, restaurantID); err != nil {
		return nil, err
	}

	urls, err := uploadAll(ctx, s.images, reviewImageDir, files)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		Content:      req.Content,
		Rate:         req.Rate,
		UserID:       userID,
		RestaurantID: restaurantID,
		Visible:      true,
		ReviewType:   reviewTypeFor(urls),
		Inspection:   models.InspectionIncomplete,
		Images:       imageRows(urls),
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		s.discardImages(ctx, urls)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	log.Ctx(ctx).Info().Str("review_id", review.ID.String()).Int("images", len(urls)).Msg("review created")
	return s.Get(ctx, review.ID)
}

// Update replaces the content, rate and photos of the caller's review.
// Removing every photo from a rewarded review takes the reward back.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uuid.UUID, req types.ReviewRequest, files []*multipart.FileHeader) (*types.ReviewItem, error) {
	if err := validateReview(req, files); err != nil {
		return nil, err
	}
	review, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	urls, err := uploadAll(ctx, s.images, reviewImageDir, files)
	if err != nil {
		return nil, err
	}
	oldURLs := imageURLs(review.Images)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete review images: %w", err)
		}

		updates := map[string]any{
			"content":     req.Content,
			"rate":        req.Rate,
			"review_type": reviewTypeFor(urls),
		}
		if len(urls) > 0 {
			updates["inspection"] = models.InspectionIncomplete
			if err := tx.Create(imageRowsFor(review.ID, urls)).Error; err != nil {
				return fmt.Errorf("failed to save review images: %w", err)
			}
		} else if err := s.revokeReward(tx, review); err != nil {
			return err
		}
		return tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(updates).Error
	})
	if err != nil {
		s.discardImages(ctx, urls)
		return nil, err
	}

	s.discardImages(ctx, oldURLs)
	return s.Get(ctx, review.ID)
}

// Delete soft-deletes the caller's review and removes its photos.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	review, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete review images: %w", err)
		}
		if err := s.revokeReward(tx, review); err != nil {
			return err
		}
		if err := tx.Delete(&models.Review{}, "id = ?", review.ID).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.discardImages(ctx, imageURLs(review.Images))
	return nil
}

// ToggleRecommendation adds or removes the caller's recommendation. The first
// time another user recommends a review its author is rewarded; withdrawing
// and re-adding the recommendation pays nothing more.
func (s *ReviewService) ToggleRecommendation(ctx context.Context, userID, reviewID uuid.UUID) (*types.RecommendationResult, error) {
	if _, err := findActiveUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	result := &types.RecommendationResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			return notFoundOr(err, "review not found", "load review")
		}

		var existing models.Recommendation
		err := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove recommendation: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Recommendation{UserID: userID, ReviewID: reviewID}).Error; err != nil {
				return fmt.Errorf("failed to add recommendation: %w", err)
			}
			result.Recommended = true
			if review.UserID != userID {
				if err := rewardRecommender(tx, userID, review); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("failed to load recommendation: %w", err)
		}

		return tx.Model(&models.Recommendation{}).Where("review_id = ?", reviewID).Count(&result.Count).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReviewService) Report(ctx context.Context, userID, reviewID uuid.UUID, content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.InvalidInput("report content is required")
	}
	if _, err := findActiveUser(ctx, s.db, userID); err != nil {
		return err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", reviewID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("review not found")
	}
	report := models.Report{UserID: userID, ReviewID: reviewID, Content: content}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	log.Ctx(ctx).Info().Str("review_id", reviewID.String()).Msg("review reported")
	return nil
}

// ListMine pages the caller's reviews, newest first.
func (s *ReviewService) ListMine(ctx context.Context, userID uuid.UUID, page int) (types.Page[types.ReviewItem], error) {
	page, size := normalizePage(page, s.pageSize)
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Images").Preload("User").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page * size).Limit(size + 1).
		Find(&reviews).Error
	if err != nil {
		return types.Page[types.ReviewItem]{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	items, err := toReviewItems(ctx, s.db, reviews)
	if err != nil {
		return types.Page[types.ReviewItem]{}, err
	}
	return buildPage(items, page, size), nil
}

// Inspect records an admin's moderation decision. COMPLETE_REWARD grants the
// photo-review reward once.
func (s *ReviewService) Inspect(ctx context.Context, adminID, reviewID uuid.UUID, req types.InspectionRequest) (*types.ReviewItem, error) {
	if !req.Inspection.Valid() {
		return nil, apperr.InvalidInput("unknown inspection state")
	}
	admin, err := findActiveUser(ctx, s.db, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperr.Forbidden("admin role required")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			return notFoundOr(err, "review not found", "load review")
		}

		updates := map[string]any{"inspection": req.Inspection}
		if req.Visible != nil {
			updates["visible"] = *req.Visible
		}
		if req.Inspection == models.InspectionCompleteReward {
			if review.ReviewType != models.ReviewTypePhoto {
				return apperr.InvalidInput("only photo reviews can be rewarded")
			}
			granted, err := flipFlag(tx, &models.Review{}, review.ID, "reward_granted", true)
			if err != nil {
				return err
			}
			if granted {
				if err := adjustPoints(tx, review.UserID, rewardPhotoReview); err != nil {
					return err
				}
			}
		}
		return tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, reviewID)
}

// revokeReward takes the photo reward back if the review holds it.
func (s *ReviewService) revokeReward(tx *gorm.DB, review *models.Review) error {
	revoked, err := flipFlag(tx, &models.Review{}, review.ID, "reward_granted", false)
	if err != nil || !revoked {
		return err
	}
	return adjustPoints(tx, review.UserID, -rewardPhotoReview)
}

// rewardRecommender pays the author once per (recommender, review) pair.
func rewardRecommender(tx *gorm.DB, userID uuid.UUID, review models.Review) error {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RecommendationReward{UserID: userID, ReviewID: review.ID})
	if res.Error != nil {
		return fmt.Errorf("failed to record recommendation reward: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return adjustPoints(tx, review.UserID, rewardRecommendation)
}

func (s *ReviewService) loadOwned(ctx context.Context, userID, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).Preload("Images").First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, notFoundOr(err, "review not found", "load review")
	}
	if review.UserID != userID {
		return nil, apperr.Forbidden("only the author can change this review")
	}
	return &review, nil
}

func (s *ReviewService) discardImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := deleteAll(context.WithoutCancel(ctx), s.images, urls); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("count", len(urls)).Msg("failed to delete review images")
	}
}

func validateReview(req types.ReviewRequest, files []*multipart.FileHeader) error {
	if strings.TrimSpace(req.Content) == "" {
		return apperr.InvalidInput("review content is required")
	}
	if !models.ValidReviewRate(req.Rate) {
		return apperr.InvalidInput("rate must be between 0.5 and 5.0 in steps of 0.5")
	}
	if len(files) > maxReviewImages {
		return apperr.InvalidInput(fmt.Sprintf("at most %d images are allowed", maxReviewImages))
	}
	return nil
}

func reviewTypeFor(urls []string) models.ReviewType {
	if len(urls) > 0 {
		return models.ReviewTypePhoto
	}
	return models.ReviewTypeNormal
}

func imageRows(urls []string) []models.ReviewImage {
	rows := make([]models.ReviewImage, len(urls))
	for i, u := range urls {
		rows[i] = models.ReviewImage{ImageURL: u}
	}
	return rows
}

func imageRowsFor(reviewID uuid.UUID, urls []string) []models.ReviewImage {
	rows := imageRows(urls)
	for i := range rows {
		rows[i].ReviewID = reviewID
	}
	return rows
}

func imageURLs(images []models.ReviewImage) []string {
	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = img.ImageURL
	}
	return urls
}

// toReviewItems converts reviews loaded with their images and author into
// response items with recommendation counts.
func toReviewItems(ctx context.Context, db *gorm.DB, reviews []models.Review) ([]types.ReviewItem, error) {
	ids := make([]uuid.UUID, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
	}

	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) > 0 {
		var rows []struct {
			ReviewID uuid.UUID
			N        int64
		}
		err := db.WithContext(ctx).Model(&models.Recommendation{}).
			Select("review_id, COUNT(*) AS n").
			Where("review_id IN ?", ids).
			Group("review_id").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count recommendations: %w", err)
		}
		for _, row := range rows {
			counts[row.ReviewID] = row.N
		}
	}

	items := make([]types.ReviewItem, len(reviews))
	for i, r := range reviews {
		author := types.ReviewAuthor{ID: r.UserID, Nickname: models.DeletedNickname, ImageURL: models.DefaultProfileImage}
		if r.User != nil {
			author.Nickname = r.User.Nickname
			author.ImageURL = r.User.ImageURL
		}
		item := types.ReviewItem{
			ID:                  r.ID,
			RestaurantID:        r.RestaurantID,
			Content:             r.Content,
			Rate:                r.Rate,
			ReviewType:          r.ReviewType,
			Inspection:          r.Inspection,
			Images:              imageURLs(r.Images),
			Author:              author,
			RecommendationCount: counts[r.ID],
			CreatedAt:           r.CreatedAt,
		}
		if r.Restaurant != nil {
			item.RestaurantName = r.Restaurant.Name
		}
		items[i] = item
	}
	return items, nil
}
