package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/fcm"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/observability"
	"github.com/beginvegan/backend/internal/types"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PushSender delivers one push message. *fcm.Client implements it.
type PushSender interface {
	Send(ctx context.Context, msg fcm.Message) error
}

var _ PushSender = (*fcm.Client)(nil)

// NotificationService records alarms and pushes them to the user's device.
type NotificationService struct {
	db     *gorm.DB
	alarms *AlarmService
	push   PushSender
}

var _ INotificationService = (*NotificationService)(nil)

func NewNotificationService(db *gorm.DB, alarms *AlarmService, push PushSender) *NotificationService {
	return &NotificationService{db: db, alarms: alarms, push: push}
}

// Send persists the alarm, when a type is given, and pushes it if the user
// allows notifications. A failed push leaves the alarm in place and is
// reported through Sent.
func (s *NotificationService) Send(ctx context.Context, req types.FcmSendRequest) (*types.PushResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("fcm_token = ? AND status = ?", req.Token, models.UserStatusActive).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no user is registered with this token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	result := &types.PushResult{}
	if req.AlarmType != "" {
		if _, err := s.alarms.Save(ctx, user.ID, req.AlarmType, req.ItemID, req.Body); err != nil {
			return nil, err
		}
		result.AlarmSaved = true
	}

	if !user.AlarmSetting {
		observability.ObservePush("muted")
		result.Message = "notifications are turned off"
		return result, nil
	}
	if s.push == nil {
		observability.ObservePush("disabled")
		result.Message = "push is not configured"
		return result, nil
	}

	msg := fcm.Message{
		Token: req.Token,
		Title: req.Title,
		Body:  req.Body,
		Data: map[string]string{
			"alarmType": string(req.AlarmType),
			"itemId":    req.ItemID,
		},
	}
	if err := s.push.Send(ctx, msg); err != nil {
		observability.ObservePush("failed")
		log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID.String()).Msg("push failed")
		if fcm.IsUnregistered(err) {
			s.clearToken(ctx, &user)
		}
		result.Message = "push delivery failed"
		return result, nil
	}

	observability.ObservePush("sent")
	result.Sent = true
	result.Message = "push sent"
	return result, nil
}

func (s *NotificationService) clearToken(ctx context.Context, user *models.User) {
	if err := s.db.WithContext(ctx).Model(user).Update("fcm_token", "").Error; err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to clear stale fcm token")
	}
}
