package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Point rewards. Each is granted once per milestone; the photo-review reward
// is taken back when the rewarded review loses its photos or is deleted.
const (
	rewardProfileImage   = 1
	rewardVeganTest      = 1
	rewardRecommendation = 2
	rewardPhotoReview    = 3
)

const defaultPageSize = 10

// maxOffset bounds page*size.
const maxOffset = math.MaxInt32

// adjustPoints applies delta in a single statement so concurrent rewards do
// not overwrite each other. The balance is clamped at zero.
func adjustPoints(tx *gorm.DB, userID uuid.UUID, delta int) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("point", gorm.Expr("CASE WHEN point + ? < 0 THEN 0 ELSE point + ? END", delta, delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// flipFlag sets a boolean guard column to `to` on the row with id, only if
// it currently holds the opposite value. It reports whether this call made
// the change; of several concurrent callers exactly one sees true.
func flipFlag(tx *gorm.DB, model any, id uuid.UUID, column string, to bool) (bool, error) {
	res := tx.Model(model).Where("id = ?", id).Where(column+" = ?", !to).Update(column, to)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update %s: %w", column, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// findActiveUser loads a user that has not withdrawn.
func findActiveUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("id = ? AND status = ?", userID, models.UserStatusActive).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// notFoundOr maps gorm's record-not-found to an apperr with msg.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if page > maxOffset/size {
		page = maxOffset / size
	}
	return page, size
}

// buildPage trims a result fetched with limit size+1 and reports whether a
// further page exists.
func buildPage[T any](items []T, page, size int) types.Page[T] {
	hasNext := len(items) > size
	if hasNext {
		items = items[:size]
	}
	if items == nil {
		items = []T{}
	}
	return types.Page[T]{Items: items, Page: page, HasNext: hasNext}
}

// slicePage pages an in-memory list.
func slicePage[T any](items []T, page, size int) types.Page[T] {
	if page > len(items)/size {
		return types.Page[T]{Items: []T{}, Page: page}
	}
	start := page * size
	if start >= len(items) {
		return types.Page[T]{Items: []T{}, Page: page}
	}
	end := min(start+size, len(items))
	return types.Page[T]{Items: items[start:end], Page: page, HasNext: end < len(items)}
}
