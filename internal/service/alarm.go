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

// AlarmService keeps the per-user notification history.
type AlarmService struct {
	db *gorm.DB
}

var _ IAlarmService = (*AlarmService)(nil)

func NewAlarmService(db *gorm.DB) *AlarmService {
	return &AlarmService{db: db}
}

func (s *AlarmService) Save(ctx context.Context, userID uuid.UUID, alarmType models.AlarmType, itemID, content string) (*models.Alarm, error) {
	if !alarmType.Valid() {
		return nil, apperr.InvalidInput("unknown alarm type")
	}
	alarm := models.Alarm{UserID: userID, AlarmType: alarmType, ItemID: itemID, Content: content}
	if err := s.db.WithContext(ctx).Create(&alarm).Error; err != nil {
		return nil, fmt.Errorf("failed to save alarm: %w", err)
	}
	return &alarm, nil
}

// History splits the user's alarms into unread and read, oldest first.
func (s *AlarmService) History(ctx context.Context, userID uuid.UUID) (*types.AlarmHistory, error) {
	var alarms []models.Alarm
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&alarms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load alarms: %w", err)
	}

	history := &types.AlarmHistory{Unread: []types.AlarmItem{}, Read: []types.AlarmItem{}}
	for _, a := range alarms {
		item := types.AlarmItem{
			ID:        a.ID,
			AlarmType: a.AlarmType,
			ItemID:    a.ItemID,
			Content:   a.Content,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
		if a.IsRead {
			history.Read = append(history.Read, item)
		} else {
			history.Unread = append(history.Unread, item)
		}
	}
	return history, nil
}

func (s *AlarmService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Alarm{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark alarms read: %w", err)
	}
	return nil
}
