package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type AlarmHandler struct {
	alarmService        service.IAlarmService
	notificationService service.INotificationService
}

func NewAlarmHandler(alarmService service.IAlarmService, notificationService service.INotificationService) *AlarmHandler {
	return &AlarmHandler{
		alarmService:        alarmService,
		notificationService: notificationService,
	}
}

func (h *AlarmHandler) History(c *gin.Context) {
	history, err := h.alarmService.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, history)
}

func (h *AlarmHandler) MarkAllRead(c *gin.Context) {
	if err := h.alarmService.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	message(c, "alarms marked as read")
}

// SendPush delivers a push to one device and records it in the recipient's
// alarm history.
func (h *AlarmHandler) SendPush(c *gin.Context) {
	var req types.FcmSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	result, err := h.notificationService.Send(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
