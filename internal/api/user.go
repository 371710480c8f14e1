package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetHome(c *gin.Context) {
	home, err := h.userService.GetHome(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, home)
}

func (h *UserHandler) GetMyPage(c *gin.Context) {
	page, err := h.userService.GetMyPage(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *UserHandler) UpdateVeganType(c *gin.Context) {
	var req types.VeganTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if err := h.userService.UpdateVeganType(c.Request.Context(), middleware.UserID(c), req.VeganType); err != nil {
		fail(c, err)
		return
	}
	message(c, "vegan type updated")
}

func (h *UserHandler) CompleteVeganTest(c *gin.Context) {
	var req types.VeganTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if err := h.userService.CompleteVeganTest(c.Request.Context(), middleware.UserID(c), req.VeganType); err != nil {
		fail(c, err)
		return
	}
	message(c, "vegan test result saved")
}

func (h *UserHandler) GetAlarmSetting(c *gin.Context) {
	enabled, err := h.userService.GetAlarmSetting(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, types.AlarmSetting{AlarmSetting: enabled})
}

func (h *UserHandler) ToggleAlarmSetting(c *gin.Context) {
	enabled, err := h.userService.ToggleAlarmSetting(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, types.AlarmSetting{AlarmSetting: enabled})
}

func (h *UserHandler) UpdateFcmToken(c *gin.Context) {
	var req types.FcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	if err := h.userService.UpdateFcmToken(c.Request.Context(), middleware.UserID(c), req.FcmToken); err != nil {
		fail(c, err)
		return
	}
	message(c, "fcm token updated")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}
	file, err := formFile(c, "file")
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), req, file)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *UserHandler) Withdraw(c *gin.Context) {
	if err := h.userService.Withdraw(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	message(c, "account deleted")
}
