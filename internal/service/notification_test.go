package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/fcm"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/testhelpers"
	"github.com/beginvegan/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAlarmHistory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAlarmService(db)
	user := testhelpers.CreateUser(t, db, "history@example.com")
	ctx := context.Background()

	first, err := svc.Save(ctx, user.ID, models.AlarmTypeMap, "r-1", "first")
	require.NoError(t, err)
	require.NoError(t, svc.MarkAllRead(ctx, user.ID))
	_, err = svc.Save(ctx, user.ID, models.AlarmTypeTips, "", "second")
	require.NoError(t, err)
	_, err = svc.Save(ctx, user.ID, models.AlarmTypeMyPage, "", "third")
	require.NoError(t, err)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history.Read, 1)
	assert.Equal(t, first.ID, history.Read[0].ID)
	require.Len(t, history.Unread, 2)
	assert.Equal(t, "second", history.Unread[0].Content)
	assert.Equal(t, "third", history.Unread[1].Content)

	_, err = svc.Save(ctx, user.ID, "SMS", "", "bad")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestNotificationSend(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	alarms := service.NewAlarmService(db)
	ctx := context.Background()

	req := types.FcmSendRequest{
		Token:     "device-1",
		Title:     "New review",
		Body:      "Someone recommended your review",
		AlarmType: models.AlarmTypeMyPage,
		ItemID:    "review-1",
	}

	t.Run("delivers and records alarm", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, testhelpers.Email("push"), func(u *models.User) { u.FcmToken = "device-1" })
		push := new(testhelpers.MockPushSender)
		push.On("Send", mock.Anything, mock.MatchedBy(func(m fcm.Message) bool {
			return m.Token == "device-1" && m.Data["alarmType"] == "MYPAGE" && m.Data["itemId"] == "review-1"
		})).Return(nil).Once()

		res, err := service.NewNotificationService(db, alarms, push).Send(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.Sent)
		assert.True(t, res.AlarmSaved)
		push.AssertExpectations(t)

		history, err := alarms.History(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, history.Unread, 1)
		require.NoError(t, db.Model(user).Update("fcm_token", "").Error)
	})

	t.Run("failure keeps alarm", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, testhelpers.Email("fail"), func(u *models.User) { u.FcmToken = "device-1" })
		push := new(testhelpers.MockPushSender)
		push.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		res, err := service.NewNotificationService(db, alarms, push).Send(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Sent)
		assert.True(t, res.AlarmSaved)

		history, err := alarms.History(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, history.Unread, 1)
		assert.Equal(t, "device-1", testhelpers.ReloadUser(t, db, user.ID).FcmToken)
		require.NoError(t, db.Model(user).Update("fcm_token", "").Error)
	})

	t.Run("unregistered token is cleared", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, testhelpers.Email("gone"), func(u *models.User) { u.FcmToken = "device-1" })
		push := new(testhelpers.MockPushSender)
		push.On("Send", mock.Anything, mock.Anything).
			Return(&fcm.SendError{StatusCode: 404, Status: "UNREGISTERED"}).Once()

		res, err := service.NewNotificationService(db, alarms, push).Send(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Sent)
		assert.Empty(t, testhelpers.ReloadUser(t, db, user.ID).FcmToken)
	})

	t.Run("muted user is not pushed", func(t *testing.T) {
		testhelpers.CreateUser(t, db, testhelpers.Email("muted"), func(u *models.User) {
			u.FcmToken = "device-1"
			u.AlarmSetting = false
		})
		push := new(testhelpers.MockPushSender)

		res, err := service.NewNotificationService(db, alarms, push).Send(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Sent)
		assert.True(t, res.AlarmSaved)
		push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := service.NewNotificationService(db, alarms, new(testhelpers.MockPushSender)).
			Send(ctx, types.FcmSendRequest{Token: "nobody", Title: "t", Body: "b"})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}
