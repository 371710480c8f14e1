package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/beginvegan/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RatingService keeps each restaurant's rate in line with its reviews.
type RatingService struct {
	db  *gorm.DB
	now func() time.Time
}

var _ IRatingService = (*RatingService)(nil)

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db, now: time.Now}
}

// RecomputeRecent recalculates the rate of every restaurant with a review
// changed or deleted inside window. It returns how many restaurants were
// updated; per-restaurant failures are joined into the error.
func (s *RatingService) RecomputeRecent(ctx context.Context, window time.Duration) (int, error) {
	since := s.now().Add(-window)

	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Unscoped().Model(&models.Review{}).
		Where("updated_at >= ? OR deleted_at >= ?", since, since).
		Distinct().Pluck("restaurant_id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to select restaurants: %w", err)
	}

	var (
		updated int
		errs    []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Recompute(ctx, id); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to recompute rate")
			errs = append(errs, fmt.Errorf("restaurant %s: %w", id, err))
			continue
		}
		updated++
	}
	return updated, errors.Join(errs...)
}

// Recompute sets a restaurant's rate to the average of its visible reviews,
// or 0 when there are none.
func (s *RatingService) Recompute(ctx context.Context, restaurantID uuid.UUID) error {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(rate)").
		Where("restaurant_id = ? AND visible = ?", restaurantID, true).
		Row().Scan(&avg)
	if err != nil {
		return fmt.Errorf("failed to average reviews: %w", err)
	}

	rate := 0.0
	if avg.Valid {
		rate = RoundRate(avg.Float64)
	}
	res := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", restaurantID).Update("rate", rate)
	if res.Error != nil {
		return fmt.Errorf("failed to update rate: %w", res.Error)
	}
	return nil
}

// RoundRate rounds half-up to one decimal place. The epsilon absorbs binary
// representation error so 4.25 rounds to 4.3.
func RoundRate(v float64) float64 {
	return math.Floor(v*10+0.5+1e-9) / 10
}
